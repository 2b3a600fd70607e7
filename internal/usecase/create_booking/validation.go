package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ConsumerID <= 0 {
		return fmt.Errorf("%w: consumerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if req.AgreedPrice != nil && *req.AgreedPrice < 0 {
		return fmt.Errorf("%w: agreedPrice must not be negative", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateTime проверяет интервал бронирования относительно текущего времени
func validateTime(start, end, now time.Time) error {
	err := domain.ValidateBookingTime(start, end, now)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInvalidTimeRange):
		return ErrInvalidTimeRange
	case errors.Is(err, domain.ErrStartInPast):
		return ErrStartInPast
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}

// conflictError описывает пересекающееся бронирование
func conflictError(existing *domain.Booking) error {
	return fmt.Errorf("%w: booking id=%d from %s to %s",
		ErrBookingConflict,
		existing.ID,
		existing.StartTime.UTC().Format(time.RFC3339),
		existing.EndTime.UTC().Format(time.RFC3339),
	)
}
