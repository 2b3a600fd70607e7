package models

import (
	"time"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
)

// UpdateProfileRequest частичное обновление профиля
type UpdateProfileRequest struct {
	CompanyName *string `json:"companyName,omitempty"`
	Description *string `json:"description,omitempty"`
}

// SetLocalitiesRequest полная замена зоны обслуживания
type SetLocalitiesRequest struct {
	LocalityIDs []int64 `json:"localityIds"`
}

// VerifyRequest подтверждение провайдера администратором
type VerifyRequest struct {
	IsVerified bool `json:"isVerified"`
}

// ProviderResponse публичный профиль провайдера
type ProviderResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	CompanyName   *string   `json:"companyName,omitempty"`
	Description   *string   `json:"description,omitempty"`
	AverageRating float64   `json:"averageRating"`
	TotalRatings  int       `json:"totalRatings"`
	IsVerified    bool      `json:"isVerified"`
	LocalityIDs   []int64   `json:"localityIds"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func FromDomain(p *domain.ServiceProvider) *ProviderResponse {
	localities := p.LocalityIDs
	if localities == nil {
		localities = []int64{}
	}
	return &ProviderResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		CompanyName:   p.CompanyName,
		Description:   p.Description,
		AverageRating: p.AverageRating,
		TotalRatings:  p.TotalRatings,
		IsVerified:    p.IsVerified,
		LocalityIDs:   localities,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
