package providers

import "errors"

var (
	// ErrProviderNotFound возвращается, когда профиль провайдера не найден
	ErrProviderNotFound = errors.New("service provider not found")

	// ErrProviderProfileRequired у вызывающего нет профиля провайдера
	ErrProviderProfileRequired = errors.New("service provider profile required")

	// ErrUnknownLocality среди переданных id есть несуществующие
	ErrUnknownLocality = errors.New("unknown locality")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
