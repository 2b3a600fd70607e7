package providers

import (
	"context"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/providers/models"
)

type ProviderService interface {
	GetByID(ctx context.Context, id int64) (*models.ProviderResponse, error)
	UpdateMe(ctx context.Context, identity *domain.Identity, req *models.UpdateProfileRequest) (*models.ProviderResponse, error)
	SetMyLocalities(ctx context.Context, identity *domain.Identity, req *models.SetLocalitiesRequest) (*models.ProviderResponse, error)
	Verify(ctx context.Context, id int64, req *models.VerifyRequest) (*models.ProviderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
