package models

import (
	"errors"
	"time"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос списка бронирований
// Заказчик видит свои бронирования, провайдер - бронирования своих услуг,
// администратор - все (с опциональными фильтрами)
type ListBookingsRequest struct {
	Identity          *domain.Identity
	Status            *string
	ServiceID         *int64
	ConsumerID        *int64
	ServiceProviderID *int64
	Limit             uint64
	Offset            uint64
}

// UpdateBookingRequest частичное изменение бронирования
// Заказчик меняет время и цену, провайдер - заметки
type UpdateBookingRequest struct {
	StartTime   *time.Time `json:"startTime,omitempty"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	AgreedPrice *float64   `json:"agreedPrice,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// HasConsumerFields есть ли в запросе поля заказчика
func (r *UpdateBookingRequest) HasConsumerFields() bool {
	return r.StartTime != nil || r.EndTime != nil || r.AgreedPrice != nil
}

// HasProviderFields есть ли в запросе поля провайдера
func (r *UpdateBookingRequest) HasProviderFields() bool {
	return r.Notes != nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                int64     `json:"id"`
	ConsumerID        int64     `json:"consumerId"`
	ServiceID         int64     `json:"serviceId"`
	ServiceProviderID int64     `json:"serviceProviderId"`
	StartTime         time.Time `json:"startTime"`
	EndTime           time.Time `json:"endTime"`
	AgreedPrice       float64   `json:"agreedPrice"`
	Status            string    `json:"status"`
	Notes             *string   `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                b.ID,
		ConsumerID:        b.ConsumerID,
		ServiceID:         b.ServiceID,
		ServiceProviderID: b.ServiceProviderID,
		StartTime:         b.StartTime,
		EndTime:           b.EndTime,
		AgreedPrice:       b.AgreedPrice,
		Status:            string(b.Status),
		Notes:             b.Notes,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
