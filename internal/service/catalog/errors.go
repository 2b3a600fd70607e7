package catalog

import "errors"

var (
	// ErrNotFound возвращается, когда категория, тип услуги или услуга не найдены
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists возвращается при нарушении уникальности имени
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidReference связанная запись не существует или на запись есть ссылки
	ErrInvalidReference = errors.New("invalid reference")

	// ErrAccessDenied услугу может менять только ее провайдер или администратор
	ErrAccessDenied = errors.New("access denied")

	// ErrProviderProfileRequired у пользователя нет профиля провайдера
	ErrProviderProfileRequired = errors.New("service provider profile required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
