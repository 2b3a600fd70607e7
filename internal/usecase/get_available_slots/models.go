package get_available_slots

import "time"

// Settings рабочее окно дня и ограничения на выдачу слотов
type Settings struct {
	DayStartHour       int // начало рабочего окна, час (UTC)
	DayEndHour         int // конец рабочего окна, час (UTC), не включительно
	DefaultSlotMinutes int // длительность слота, если у услуги она не задана
	MinNoticeMinutes   int // минимальное время до начала слота
	AdvanceBookingDays int // 0 = без ограничения
}

// Request модель запроса на получение слотов услуги
type Request struct {
	ServiceID int64
	Date      time.Time // дата без времени
}

// Response модель ответа со списком слотов
type Response struct {
	ServiceID       int64
	Date            time.Time
	DurationMinutes int
	Slots           []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
	Available bool
}
