package reviews

import "errors"

var (
	// ErrReviewNotFound возвращается, когда отзыв не найден
	ErrReviewNotFound = errors.New("review not found")

	// ErrRequestNotFound возвращается, когда заявка для отзыва не найдена
	ErrRequestNotFound = errors.New("service request not found")

	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("service provider not found")

	// ErrAccessDenied возвращается, когда вызывающий не автор отзыва (или не заказчик заявки)
	ErrAccessDenied = errors.New("access denied")

	// ErrRequestNotCompleted отзыв можно оставить только на завершенную заявку
	ErrRequestNotCompleted = errors.New("service request is not completed")

	// ErrReviewAlreadyExists на одну заявку допускается один отзыв
	ErrReviewAlreadyExists = errors.New("review for this service request already exists")

	// ErrOwnReview автор не может отмечать свой отзыв полезным
	ErrOwnReview = errors.New("cannot mark your own review as helpful")

	// ErrAlreadyVoted пользователь уже отметил отзыв полезным
	ErrAlreadyVoted = errors.New("review already marked as helpful by this user")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
