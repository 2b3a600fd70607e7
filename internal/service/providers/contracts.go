package providers

import (
	"context"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
)

// ProviderRepository интерфейс репозитория профилей провайдеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceProvider, error)
	UpdateProfile(ctx context.Context, p *domain.ServiceProvider) error
	SetVerified(ctx context.Context, id int64, verified bool) error
	ReplaceLocalities(ctx context.Context, providerID int64, localityIDs []int64) error
}

// LocalityRepository проверка существования населенных пунктов
type LocalityRepository interface {
	CountExisting(ctx context.Context, ids []int64) (int, error)
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
