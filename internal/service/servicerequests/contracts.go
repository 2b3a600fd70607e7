package servicerequests

import (
	"context"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	Create(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	List(ctx context.Context, filter domain.ServiceRequestFilter) ([]*domain.ServiceRequest, error)
	Nearby(ctx context.Context, q domain.NearbyQuery) ([]*domain.NearbyServiceRequest, error)
	Update(ctx context.Context, req *domain.ServiceRequest) error
}

// ServiceTypeRepository интерфейс каталога типов услуг
type ServiceTypeRepository interface {
	GetServiceType(ctx context.Context, id int64) (*domain.ServiceType, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransitionObserver учитывает переходы статусов в метриках
type TransitionObserver interface {
	ObserveTransition(entity, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
