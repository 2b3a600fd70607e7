package service_requests

import (
	"context"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/servicerequests/models"
)

type ServiceRequestService interface {
	Create(ctx context.Context, identity *domain.Identity, req *models.CreateRequest) (*models.ServiceRequestResponse, error)
	GetByID(ctx context.Context, id int64, identity *domain.Identity) (*models.ServiceRequestResponse, error)
	List(ctx context.Context, req *models.ListRequest) (*models.ServiceRequestListResponse, error)
	Nearby(ctx context.Context, identity *domain.Identity, req *models.NearbyRequest) (*models.NearbyResponse, error)
	Accept(ctx context.Context, id int64, identity *domain.Identity, req *models.AcceptRequest) (*models.ServiceRequestResponse, error)
	Start(ctx context.Context, id int64, identity *domain.Identity) (*models.ServiceRequestResponse, error)
	Complete(ctx context.Context, id int64, identity *domain.Identity, req *models.CompleteRequest) (*models.ServiceRequestResponse, error)
	Cancel(ctx context.Context, id int64, identity *domain.Identity) (*models.ServiceRequestResponse, error)
	Reject(ctx context.Context, id int64, identity *domain.Identity) (*models.ServiceRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
