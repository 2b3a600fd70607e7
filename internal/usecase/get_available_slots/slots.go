package get_available_slots

import (
	"time"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
)

// generateTimeSlots генерирует слоты на день с фиксированным шагом slotDuration
// внутри рабочего окна. Слоты, начинающиеся раньше now+minNotice, отбрасываются
func generateTimeSlots(day time.Time, settings Settings, slotDuration int, now time.Time) []domain.TimeSlot {
	day = domain.StartOfDay(day)
	if day.Before(domain.StartOfDay(now)) {
		return []domain.TimeSlot{}
	}

	step := time.Duration(slotDuration) * time.Minute
	open := day.Add(time.Duration(settings.DayStartHour) * time.Hour)
	closeAt := day.Add(time.Duration(settings.DayEndHour) * time.Hour)
	minStart := now.Add(time.Duration(settings.MinNoticeMinutes) * time.Minute)

	result := make([]domain.TimeSlot, 0)
	for start := open; !start.Add(step).After(closeAt); start = start.Add(step) {
		if start.Before(minStart) {
			continue
		}
		result = append(result, domain.TimeSlot{Start: start, End: start.Add(step)})
	}

	return result
}

// markAvailability помечает слоты, не пересекающиеся ни с одним активным бронированием
// Бронирование, заканчивающееся ровно в начале слота, пересечением не считается
func markAvailability(slots []domain.TimeSlot, bookings []*domain.Booking) []domain.TimeSlot {
	for i := range slots {
		slots[i].Available = domain.FindOverlap(slots[i].Start, slots[i].End, bookings, 0) == nil
	}
	return slots
}

// windowOf возвращает [начало первого слота, конец последнего)
func windowOf(slots []domain.TimeSlot) (time.Time, time.Time) {
	return slots[0].Start, slots[len(slots)-1].End
}
