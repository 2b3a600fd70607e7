package catalog

import (
	"context"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	catalogRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/catalog"
)

// Repository интерфейс репозитория каталога услуг
type Repository interface {
	CreateCategory(ctx context.Context, c *domain.ServiceCategory) (*domain.ServiceCategory, error)
	GetCategory(ctx context.Context, id int64) (*domain.ServiceCategory, error)
	ListCategories(ctx context.Context) ([]*domain.ServiceCategory, error)
	UpdateCategory(ctx context.Context, c *domain.ServiceCategory) error
	DeleteCategory(ctx context.Context, id int64) error

	CreateServiceType(ctx context.Context, t *domain.ServiceType) (*domain.ServiceType, error)
	GetServiceType(ctx context.Context, id int64) (*domain.ServiceType, error)
	ListServiceTypes(ctx context.Context, categoryID *int64) ([]*domain.ServiceType, error)
	UpdateServiceType(ctx context.Context, t *domain.ServiceType) error
	DeleteServiceType(ctx context.Context, id int64) error

	CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	ListServices(ctx context.Context, filter catalogRepo.ServiceFilter) ([]*domain.Service, error)
	UpdateService(ctx context.Context, s *domain.Service) error
	DeleteService(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
