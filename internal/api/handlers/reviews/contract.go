package reviews

import (
	"context"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/reviews/models"
)

type ReviewService interface {
	Create(ctx context.Context, identity *domain.Identity, req *models.CreateReviewRequest) (*models.ReviewResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ReviewResponse, error)
	ListByProvider(ctx context.Context, providerID int64, limit, offset uint64) (*models.ReviewListResponse, error)
	Update(ctx context.Context, id int64, identity *domain.Identity, req *models.UpdateReviewRequest) (*models.ReviewResponse, error)
	Delete(ctx context.Context, id int64, identity *domain.Identity) error
	MarkHelpful(ctx context.Context, id int64, identity *domain.Identity) (*models.HelpfulResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
