package servicerequests

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("service request not found")

	// ErrServiceTypeNotFound возвращается, когда тип услуги не найден
	ErrServiceTypeNotFound = errors.New("service type not found")

	// ErrAccessDenied возвращается, когда вызывающий не является стороной заявки
	ErrAccessDenied = errors.New("access denied")

	// ErrProviderProfileRequired у пользователя нет профиля провайдера
	ErrProviderProfileRequired = errors.New("service provider profile required")

	// ErrInvalidStatus текущий статус не допускает операцию
	ErrInvalidStatus = errors.New("invalid service request status")

	// ErrOTPMismatch неверный OTP код
	ErrOTPMismatch = errors.New("otp code does not match")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
