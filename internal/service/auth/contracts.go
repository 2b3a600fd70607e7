package auth

import (
	"context"
	"time"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/internal/integrations/firebaseauth"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/jwt"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByExternalUID(ctx context.Context, uid string) (*domain.User, error)
}

// ProviderRepository интерфейс репозитория профилей провайдеров
type ProviderRepository interface {
	Create(ctx context.Context, p *domain.ServiceProvider) (*domain.ServiceProvider, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.ServiceProvider, error)
}

// TokenService выпуск и проверка собственных access токенов
type TokenService interface {
	GenerateToken(userID int64, role string) (string, time.Time, error)
	ValidateToken(token string) (*jwt.Claims, error)
}

// ExternalVerifier проверка токенов внешнего провайдера (Firebase)
type ExternalVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Identity, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
