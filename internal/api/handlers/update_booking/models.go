package update_booking

import (
	"github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/bookings/models"
)

// UpdateBookingRequest HTTP request model
// Время в формате RFC3339 или ISO 8601 до минут
type UpdateBookingRequest struct {
	StartTime   *handlers.Timestamp `json:"startTime,omitempty"`
	EndTime     *handlers.Timestamp `json:"endTime,omitempty"`
	AgreedPrice *float64            `json:"agreedPrice,omitempty"`
	Notes       *string             `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBookingRequest) ToServiceRequest() *models.UpdateBookingRequest {
	return &models.UpdateBookingRequest{
		StartTime:   handlers.TimePtr(r.StartTime),
		EndTime:     handlers.TimePtr(r.EndTime),
		AgreedPrice: r.AgreedPrice,
		Notes:       r.Notes,
	}
}
