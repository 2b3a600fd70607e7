package provider

import "errors"

var (
	// ErrProviderNotFound возвращается, когда профиль провайдера не найден
	ErrProviderNotFound = errors.New("provider.repository: service provider not found")

	// ErrProviderAlreadyExists возвращается при повторном создании профиля для пользователя
	ErrProviderAlreadyExists = errors.New("provider.repository: service provider already exists")

	// ErrInvalidReference возвращается при ссылке на несуществующую локацию или пользователя
	ErrInvalidReference = errors.New("provider.repository: referenced entity does not exist")

	ErrBuildQuery = errors.New("provider.repository: failed to build query")
	ErrExecQuery  = errors.New("provider.repository: failed to execute query")
	ErrScanRow    = errors.New("provider.repository: failed to scan row")
)
