package catalog

import "errors"

var (
	// ErrNotFound возвращается, когда категория, тип услуги или услуга не найдены
	ErrNotFound = errors.New("catalog.repository: not found")

	// ErrAlreadyExists нарушение уникальности имени
	ErrAlreadyExists = errors.New("catalog.repository: already exists")

	// ErrInvalidReference связанная запись не существует или на запись есть ссылки
	ErrInvalidReference = errors.New("catalog.repository: invalid reference")

	ErrBuildQuery = errors.New("catalog.repository: failed to build query")
	ErrExecQuery  = errors.New("catalog.repository: failed to execute query")
	ErrScanRow    = errors.New("catalog.repository: failed to scan row")
)
