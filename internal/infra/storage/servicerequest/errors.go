package servicerequest

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("servicerequest.repository: service request not found")

	// ErrInvalidReference возвращается при ссылке на несуществующий тип услуги или пользователя
	ErrInvalidReference = errors.New("servicerequest.repository: referenced entity does not exist")

	ErrBuildQuery = errors.New("servicerequest.repository: failed to build query")
	ErrExecQuery  = errors.New("servicerequest.repository: failed to execute query")
	ErrScanRow    = errors.New("servicerequest.repository: failed to scan row")
)
