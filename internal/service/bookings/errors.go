package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда вызывающий не является стороной бронирования
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStatus возвращается, когда текущий статус не допускает операцию
	// Сообщение содержит текущий статус (см. domain.TransitionError)
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrBookingConflict возвращается, когда новый интервал пересекается с активным бронированием
	ErrBookingConflict = errors.New("time slot overlaps an existing booking")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
