package models

import (
	"time"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/ptr"
)

// RegisterRequest регистрация по email и паролю
type RegisterRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FullName    string  `json:"fullName"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Role        string  `json:"role"`
}

// LoginRequest вход по email и паролю
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse публичные данные пользователя
type UserResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email,omitempty"`
	FullName    string    `json:"fullName"`
	PhoneNumber *string   `json:"phoneNumber,omitempty"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProviderProfile профиль провайдера в ответе /auth/profile
type ProviderProfile struct {
	ID            int64   `json:"id"`
	CompanyName   *string `json:"companyName,omitempty"`
	Description   *string `json:"description,omitempty"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
	IsVerified    bool    `json:"isVerified"`
	LocalityIDs   []int64 `json:"localityIds"`
}

// TokenResponse ответ register и login
type TokenResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

// ProfileResponse ответ /auth/profile
type ProfileResponse struct {
	User     UserResponse     `json:"user"`
	Provider *ProviderProfile `json:"serviceProvider,omitempty"`
}

func FromDomainUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       ptr.Value(u.Email),
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

func FromDomainProvider(p *domain.ServiceProvider) *ProviderProfile {
	if p == nil {
		return nil
	}
	localities := p.LocalityIDs
	if localities == nil {
		localities = []int64{}
	}
	return &ProviderProfile{
		ID:            p.ID,
		CompanyName:   p.CompanyName,
		Description:   p.Description,
		AverageRating: p.AverageRating,
		TotalRatings:  p.TotalRatings,
		IsVerified:    p.IsVerified,
		LocalityIDs:   localities,
	}
}
