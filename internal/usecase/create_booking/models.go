package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	ConsumerID  int64     // ID пользователя-заказчика
	ServiceID   int64     // ID услуги
	StartTime   time.Time // Начало интервала (включительно)
	EndTime     time.Time // Конец интервала (не включительно)
	AgreedPrice *float64  // Если не указана, берется цена услуги
	Notes       *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                int64
	ConsumerID        int64
	ServiceID         int64
	ServiceProviderID int64
	StartTime         time.Time
	EndTime           time.Time
	AgreedPrice       float64
	Status            string
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
