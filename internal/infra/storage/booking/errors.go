package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrInvalidReference возвращается, когда consumer/service/provider не существует
	ErrInvalidReference = errors.New("booking.repository: referenced entity does not exist")

	// ErrConcurrentUpdate возвращается при конфликте сериализуемой транзакции
	ErrConcurrentUpdate = errors.New("booking.repository: concurrent update")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
