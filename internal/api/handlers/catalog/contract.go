package catalog

import (
	"context"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/catalog/models"
)

type CatalogService interface {
	CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id int64, req *models.CategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateServiceType(ctx context.Context, req *models.ServiceTypeRequest) (*models.ServiceType, error)
	GetServiceType(ctx context.Context, id int64) (*models.ServiceType, error)
	ListServiceTypes(ctx context.Context, categoryID *int64) ([]models.ServiceType, error)
	UpdateServiceType(ctx context.Context, id int64, req *models.ServiceTypeRequest) (*models.ServiceType, error)
	DeleteServiceType(ctx context.Context, id int64) error

	CreateService(ctx context.Context, identity *domain.Identity, req *models.CreateServiceRequest) (*models.Service, error)
	GetService(ctx context.Context, id int64) (*models.Service, error)
	ListServices(ctx context.Context, req *models.ListServicesRequest) ([]models.Service, error)
	UpdateService(ctx context.Context, id int64, identity *domain.Identity, req *models.UpdateServiceRequest) (*models.Service, error)
	DeleteService(ctx context.Context, id int64, identity *domain.Identity) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
