package get_available_slots

import (
	"fmt"
	"time"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateSettings проверяет рабочее окно
func validateSettings(s Settings) error {
	if s.DayStartHour < 0 || s.DayEndHour > 24 || s.DayStartHour >= s.DayEndHour {
		return fmt.Errorf("%w: invalid working window %d-%d", ErrInternal, s.DayStartHour, s.DayEndHour)
	}
	if s.DefaultSlotMinutes <= 0 {
		return fmt.Errorf("%w: default slot duration must be positive", ErrInternal)
	}
	return nil
}

// validateDate проверяет горизонт бронирования
// Прошедшие даты не ошибка: для них просто нет слотов
func validateDate(date, now time.Time, advanceBookingDays int) error {
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := domain.StartOfDay(now).AddDate(0, 0, advanceBookingDays)
	if domain.StartOfDay(date).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
