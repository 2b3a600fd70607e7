package geography

import "errors"

var (
	// ErrNotFound возвращается, когда запись справочника не найдена
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists возвращается при нарушении уникальности имени
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidReference родительская запись не существует или у записи есть дочерние
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
