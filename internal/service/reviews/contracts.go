package reviews

import (
	"context"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.RatingReview) (*domain.RatingReview, error)
	GetByID(ctx context.Context, id int64) (*domain.RatingReview, error)
	ListByProvider(ctx context.Context, providerID int64, limit, offset uint64) ([]*domain.RatingReview, error)
	VerifiedRatings(ctx context.Context, providerID int64) ([]int, error)
	Update(ctx context.Context, rv *domain.RatingReview) error
	AddHelpfulVote(ctx context.Context, id, userID int64) (bool, error)
	IncrementHelpful(ctx context.Context, id int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

// RequestRepository источник заявок, по которым оставляются отзывы
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
}

// ProviderRepository хранит агрегированный рейтинг провайдера
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceProvider, error)
	UpdateRating(ctx context.Context, id int64, summary domain.RatingSummary) error
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
