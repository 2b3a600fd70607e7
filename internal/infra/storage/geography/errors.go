package geography

import "errors"

var (
	// ErrNotFound возвращается, когда страна/штат/район/локация не найдены
	ErrNotFound = errors.New("geography.repository: not found")

	// ErrAlreadyExists нарушение уникальности имени в пределах родителя
	ErrAlreadyExists = errors.New("geography.repository: already exists")

	// ErrInvalidReference родитель не существует или у записи есть дочерние записи
	ErrInvalidReference = errors.New("geography.repository: invalid reference")

	ErrBuildQuery = errors.New("geography.repository: failed to build query")
	ErrExecQuery  = errors.New("geography.repository: failed to execute query")
	ErrScanRow    = errors.New("geography.repository: failed to scan row")
)
