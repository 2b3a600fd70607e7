package create_booking

import (
	"time"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers"
	createBooking "github.com/Spheriverse04/ServeMee-sub000/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// Время в формате RFC3339 или ISO 8601 до минут, интервал [startTime, endTime)
type CreateBookingRequest struct {
	ServiceID   int64              `json:"serviceId"`
	StartTime   handlers.Timestamp `json:"startTime"`
	EndTime     handlers.Timestamp `json:"endTime"`
	AgreedPrice *float64           `json:"agreedPrice,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64   `json:"id"`
	ConsumerID        int64   `json:"consumerId"`
	ServiceID         int64   `json:"serviceId"`
	ServiceProviderID int64   `json:"serviceProviderId"`
	StartTime         string  `json:"startTime"`
	EndTime           string  `json:"endTime"`
	AgreedPrice       float64 `json:"agreedPrice"`
	Status            string  `json:"status"`
	Notes             *string `json:"notes,omitempty"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(consumerID int64) *createBooking.Request {
	return &createBooking.Request{
		ConsumerID:  consumerID,
		ServiceID:   r.ServiceID,
		StartTime:   r.StartTime.Time,
		EndTime:     r.EndTime.Time,
		AgreedPrice: r.AgreedPrice,
		Notes:       r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                resp.ID,
		ConsumerID:        resp.ConsumerID,
		ServiceID:         resp.ServiceID,
		ServiceProviderID: resp.ServiceProviderID,
		StartTime:         resp.StartTime.Format(time.RFC3339),
		EndTime:           resp.EndTime.Format(time.RFC3339),
		AgreedPrice:       resp.AgreedPrice,
		Status:            resp.Status,
		Notes:             resp.Notes,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
}
