package auth

import (
	"context"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/auth/models"
)

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error)
	Profile(ctx context.Context, identity *domain.Identity) (*models.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
