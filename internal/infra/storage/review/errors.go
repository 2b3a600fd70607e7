package review

import "errors"

var (
	// ErrReviewNotFound возвращается, когда отзыв не найден
	ErrReviewNotFound = errors.New("review.repository: review not found")

	// ErrReviewAlreadyExists на одну заявку допускается только один отзыв
	ErrReviewAlreadyExists = errors.New("review.repository: review for this service request already exists")

	// ErrInvalidReference возвращается при ссылке на несуществующую заявку или провайдера
	ErrInvalidReference = errors.New("review.repository: referenced entity does not exist")

	ErrBuildQuery = errors.New("review.repository: failed to build query")
	ErrExecQuery  = errors.New("review.repository: failed to execute query")
	ErrScanRow    = errors.New("review.repository: failed to scan row")
)
