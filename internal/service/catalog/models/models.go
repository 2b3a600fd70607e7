package models

import (
	"time"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
)

// CategoryRequest создание и обновление категории
type CategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// ServiceTypeRequest создание и обновление типа услуги
type ServiceTypeRequest struct {
	CategoryID  int64    `json:"categoryId"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	BasePrice   *float64 `json:"basePrice,omitempty"`
}

// CreateServiceRequest создание услуги провайдером
// ServiceProviderID учитывается только для администратора
type CreateServiceRequest struct {
	ServiceProviderID *int64  `json:"serviceProviderId,omitempty"`
	ServiceTypeID     int64   `json:"serviceTypeId"`
	Name              string  `json:"name"`
	Description       *string `json:"description,omitempty"`
	Price             float64 `json:"price"`
	DurationMinutes   *int    `json:"durationMinutes,omitempty"`
	IsActive          *bool   `json:"isActive,omitempty"`
}

// UpdateServiceRequest частичное обновление услуги
type UpdateServiceRequest struct {
	ServiceTypeID   *int64   `json:"serviceTypeId,omitempty"`
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	IsActive        *bool    `json:"isActive,omitempty"`
}

// ListServicesRequest фильтры списка услуг
type ListServicesRequest struct {
	ServiceProviderID *int64
	ServiceTypeID     *int64
	OnlyActive        bool
}

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ServiceType struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"categoryId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	BasePrice   *float64  `json:"basePrice,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Service struct {
	ID                int64     `json:"id"`
	ServiceProviderID int64     `json:"serviceProviderId"`
	ServiceTypeID     int64     `json:"serviceTypeId"`
	Name              string    `json:"name"`
	Description       *string   `json:"description,omitempty"`
	Price             float64   `json:"price"`
	DurationMinutes   *int      `json:"durationMinutes,omitempty"`
	IsActive          bool      `json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func FromCategory(c *domain.ServiceCategory) Category {
	return Category{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func FromServiceType(t *domain.ServiceType) ServiceType {
	return ServiceType{
		ID:          t.ID,
		CategoryID:  t.CategoryID,
		Name:        t.Name,
		Description: t.Description,
		BasePrice:   t.BasePrice,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func FromService(s *domain.Service) Service {
	return Service{
		ID:                s.ID,
		ServiceProviderID: s.ServiceProviderID,
		ServiceTypeID:     s.ServiceTypeID,
		Name:              s.Name,
		Description:       s.Description,
		Price:             s.Price,
		DurationMinutes:   s.DurationMinutes,
		IsActive:          s.IsActive,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
