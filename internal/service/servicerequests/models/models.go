package models

import (
	"time"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
)

// Request модели

// CreateRequest создание заявки заказчиком
type CreateRequest struct {
	ConsumerID     int64
	ServiceTypeID  int64   `json:"serviceTypeId"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	ServiceAddress string  `json:"serviceAddress"`
}

// AcceptRequest принятие заявки провайдером
type AcceptRequest struct {
	OTPCode string `json:"otpCode"`
}

// CompleteRequest завершение заявки с опциональной стоимостью
type CompleteRequest struct {
	TotalCost *float64 `json:"totalCost,omitempty"`
}

// ListRequest список заявок вызывающего
type ListRequest struct {
	Identity *domain.Identity
	Status   *string
	Limit    uint64
	Offset   uint64
}

// NearbyRequest поиск открытых заявок рядом с точкой
type NearbyRequest struct {
	Latitude      float64
	Longitude     float64
	RadiusKm      *float64
	ServiceTypeID *int64
	Limit         uint64
}

// Response модели

// Location координаты
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ServiceRequestResponse ответ с данными заявки
// OTPCode заполняется только для заказчика-владельца
type ServiceRequestResponse struct {
	ID                int64      `json:"id"`
	ConsumerID        int64      `json:"consumerId"`
	ServiceProviderID *int64     `json:"serviceProviderId,omitempty"`
	ServiceTypeID     int64      `json:"serviceTypeId"`
	Location          Location   `json:"location"`
	ServiceAddress    string     `json:"serviceAddress"`
	Status            string     `json:"status"`
	OTPCode           *string    `json:"otpCode,omitempty"`
	TotalCost         *float64   `json:"totalCost,omitempty"`
	PaymentStatus     string     `json:"paymentStatus"`
	RequestedAt       time.Time  `json:"requestedAt"`
	AcceptedAt        *time.Time `json:"acceptedAt,omitempty"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	CancelledAt       *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// ServiceRequestListResponse список заявок
type ServiceRequestListResponse struct {
	ServiceRequests []ServiceRequestResponse `json:"serviceRequests"`
}

// NearbyItem заявка с расстоянием от точки поиска
type NearbyItem struct {
	ServiceRequestResponse
	DistanceKm float64 `json:"distanceKm"`
}

// NearbyResponse результат поиска рядом
type NearbyResponse struct {
	RadiusKm        float64      `json:"radiusKm"`
	ServiceRequests []NearbyItem `json:"serviceRequests"`
}

// Методы конвертации

// FromDomain конвертирует заявку в DTO; OTP раскрывается только если viewer - заказчик
func FromDomain(r *domain.ServiceRequest, viewer *domain.Identity) *ServiceRequestResponse {
	if r == nil {
		return nil
	}

	resp := &ServiceRequestResponse{
		ID:                r.ID,
		ConsumerID:        r.ConsumerID,
		ServiceProviderID: r.ServiceProviderID,
		ServiceTypeID:     r.ServiceTypeID,
		Location:          Location{Latitude: r.Location.Latitude, Longitude: r.Location.Longitude},
		ServiceAddress:    r.ServiceAddress,
		Status:            string(r.Status),
		TotalCost:         r.TotalCost,
		PaymentStatus:     string(r.PaymentStatus),
		RequestedAt:       r.RequestedAt,
		AcceptedAt:        r.AcceptedAt,
		CompletedAt:       r.CompletedAt,
		CancelledAt:       r.CancelledAt,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}

	if viewer != nil && viewer.UserID == r.ConsumerID {
		otp := r.OTPCode
		resp.OTPCode = &otp
	}

	return resp
}

// FromDomainList конвертирует список заявок
func FromDomainList(requests []*domain.ServiceRequest, viewer *domain.Identity) *ServiceRequestListResponse {
	resp := &ServiceRequestListResponse{
		ServiceRequests: make([]ServiceRequestResponse, 0, len(requests)),
	}
	for _, r := range requests {
		resp.ServiceRequests = append(resp.ServiceRequests, *FromDomain(r, viewer))
	}
	return resp
}
