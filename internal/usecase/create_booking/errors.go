package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга снята с публикации
	ErrServiceInactive = errors.New("create_booking: service is not active")

	// ErrInvalidTimeRange возвращается, когда начало не раньше окончания
	ErrInvalidTimeRange = errors.New("create_booking: start time must be before end time")

	// ErrStartInPast возвращается, когда начало бронирования в прошлом
	ErrStartInPast = errors.New("create_booking: start time is in the past")

	// ErrBookingConflict возвращается, когда интервал пересекается с активным бронированием
	ErrBookingConflict = errors.New("create_booking: time slot overlaps an existing booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
