package servicerequests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	catalogRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/catalog"
	requestRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/servicerequest"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/servicerequests/models"
)

const entity = "service_request"

// Service сервис заявок на услуги по требованию
type Service struct {
	requestRepo RequestRepository
	typeRepo    ServiceTypeRepository
	txManager   TransactionManager
	observer    TransitionObserver
	logger      Logger
	now         func() time.Time
	generateOTP func() (string, error)
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	requestRepo RequestRepository,
	typeRepo ServiceTypeRepository,
	txManager TransactionManager,
	observer TransitionObserver,
	logger Logger,
) *Service {
	return &Service{
		requestRepo: requestRepo,
		typeRepo:    typeRepo,
		txManager:   txManager,
		observer:    observer,
		logger:      logger,
		now:         time.Now,
		generateOTP: domain.GenerateOTP,
	}
}

// Create создает заявку в статусе PENDING с новым OTP
func (s *Service) Create(ctx context.Context, identity *domain.Identity, req *models.CreateRequest) (*models.ServiceRequestResponse, error) {
	s.logger.Info("Create: consumer=%d, serviceType=%d", identity.UserID, req.ServiceTypeID)

	location := domain.GeoPoint{Latitude: req.Latitude, Longitude: req.Longitude}
	if !location.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidLocation)
	}

	address := strings.TrimSpace(req.ServiceAddress)
	if address == "" || len(address) > domain.MaxAddressLength {
		return nil, fmt.Errorf("%w: serviceAddress is required and must be at most %d characters", ErrInvalidInput, domain.MaxAddressLength)
	}

	if _, err := s.typeRepo.GetServiceType(ctx, req.ServiceTypeID); err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			s.logger.Warn("Create: service type id=%d not found", req.ServiceTypeID)
			return nil, ErrServiceTypeNotFound
		}
		s.logger.Error("Create: failed to get service type id=%d: %v", req.ServiceTypeID, err)
		return nil, fmt.Errorf("%w: Create - get service type: %v", ErrInternal, err)
	}

	otp, err := s.generateOTP()
	if err != nil {
		s.logger.Error("Create: %v", err)
		return nil, fmt.Errorf("%w: Create - %v", ErrInternal, err)
	}

	created, err := s.requestRepo.Create(ctx, &domain.ServiceRequest{
		ConsumerID:     identity.UserID,
		ServiceTypeID:  req.ServiceTypeID,
		Location:       location,
		ServiceAddress: address,
		Status:         domain.RequestPending,
		OTPCode:        otp,
		PaymentStatus:  domain.PaymentPending,
		RequestedAt:    s.now(),
	})
	if err != nil {
		return nil, s.mapRepoError("Create", 0, err)
	}

	s.observer.ObserveTransition(entity, string(created.Status))
	s.logger.Info("Create: created service request id=%d", created.ID)
	return models.FromDomain(created, identity), nil
}

// GetByID возвращает заявку
// Заказчик видит свои заявки, провайдер - назначенные ему и открытые (PENDING), админ - все
func (s *Service) GetByID(ctx context.Context, id int64, identity *domain.Identity) (*models.ServiceRequestResponse, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}

	if !canView(req, identity) {
		s.logger.Warn("GetByID: access denied for user=%d to request id=%d", identity.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomain(req, identity), nil
}

func canView(req *domain.ServiceRequest, identity *domain.Identity) bool {
	switch {
	case identity.IsAdmin(), req.ConsumerID == identity.UserID:
		return true
	case identity.ProviderID != nil:
		return req.IsAssignedTo(*identity.ProviderID) || req.Status == domain.RequestPending
	default:
		return false
	}
}

// List возвращает заявки заказчика или назначенные провайдеру
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ServiceRequestListResponse, error) {
	filter := domain.ServiceRequestFilter{Limit: req.Limit, Offset: req.Offset}

	if req.Status != nil {
		status := domain.ServiceRequestStatus(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	switch {
	case req.Identity.IsAdmin():
	case req.Identity.Role == domain.RoleServiceProvider:
		if req.Identity.ProviderID == nil {
			return models.FromDomainList(nil, req.Identity), nil
		}
		filter.ServiceProviderID = req.Identity.ProviderID
	default:
		filter.ConsumerID = &req.Identity.UserID
	}

	requests, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, s.mapRepoError("List", 0, err)
	}

	s.logger.Info("List: fetched %d service requests for user=%d", len(requests), req.Identity.UserID)
	return models.FromDomainList(requests, req.Identity), nil
}

// Nearby ищет открытые заявки в радиусе от точки
func (s *Service) Nearby(ctx context.Context, identity *domain.Identity, req *models.NearbyRequest) (*models.NearbyResponse, error) {
	center := domain.GeoPoint{Latitude: req.Latitude, Longitude: req.Longitude}
	if !center.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidLocation)
	}

	radius := domain.DefaultSearchRadiusKm
	if req.RadiusKm != nil {
		radius = *req.RadiusKm
	}
	if radius <= 0 || radius > domain.MaxSearchRadiusKm {
		return nil, fmt.Errorf("%w: radiusKm must be in (0, %.0f]", ErrInvalidInput, domain.MaxSearchRadiusKm)
	}

	found, err := s.requestRepo.Nearby(ctx, domain.NearbyQuery{
		Center:        center,
		RadiusKm:      radius,
		ServiceTypeID: req.ServiceTypeID,
		Limit:         req.Limit,
	})
	if err != nil {
		return nil, s.mapRepoError("Nearby", 0, err)
	}

	resp := &models.NearbyResponse{
		RadiusKm:        radius,
		ServiceRequests: make([]models.NearbyItem, 0, len(found)),
	}
	for _, f := range found {
		resp.ServiceRequests = append(resp.ServiceRequests, models.NearbyItem{
			ServiceRequestResponse: *models.FromDomain(f.Request, identity),
			DistanceKm:             f.DistanceKm,
		})
	}

	s.logger.Info("Nearby: %d requests within %.1f km of (%f, %f)", len(found), radius, center.Latitude, center.Longitude)
	return resp, nil
}

// Accept назначает заявку провайдеру при совпадении OTP
func (s *Service) Accept(ctx context.Context, id int64, identity *domain.Identity, req *models.AcceptRequest) (*models.ServiceRequestResponse, error) {
	providerID, err := requireProvider(identity)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, "Accept", id, identity, func(r *domain.ServiceRequest) error {
		return r.Accept(providerID, strings.TrimSpace(req.OTPCode), s.now())
	})
}

// Start переводит принятую заявку в работу (только назначенный провайдер)
func (s *Service) Start(ctx context.Context, id int64, identity *domain.Identity) (*models.ServiceRequestResponse, error) {
	return s.mutate(ctx, "Start", id, identity, func(r *domain.ServiceRequest) error {
		if !assigned(r, identity) {
			return ErrAccessDenied
		}
		return r.Start()
	})
}

// Complete завершает заявку (только назначенный провайдер)
func (s *Service) Complete(ctx context.Context, id int64, identity *domain.Identity, req *models.CompleteRequest) (*models.ServiceRequestResponse, error) {
	if req.TotalCost != nil && *req.TotalCost < 0 {
		return nil, fmt.Errorf("%w: totalCost must not be negative", ErrInvalidInput)
	}

	return s.mutate(ctx, "Complete", id, identity, func(r *domain.ServiceRequest) error {
		if !assigned(r, identity) {
			return ErrAccessDenied
		}
		return r.Complete(req.TotalCost, s.now())
	})
}

// Cancel отменяет заявку: заказчик, назначенный провайдер или администратор
func (s *Service) Cancel(ctx context.Context, id int64, identity *domain.Identity) (*models.ServiceRequestResponse, error) {
	return s.mutate(ctx, "Cancel", id, identity, func(r *domain.ServiceRequest) error {
		if r.ConsumerID != identity.UserID && !assigned(r, identity) && !identity.IsAdmin() {
			return ErrAccessDenied
		}
		return r.Cancel(s.now())
	})
}

// Reject снимает назначение с принятой заявки (только назначенный провайдер)
func (s *Service) Reject(ctx context.Context, id int64, identity *domain.Identity) (*models.ServiceRequestResponse, error) {
	return s.mutate(ctx, "Reject", id, identity, func(r *domain.ServiceRequest) error {
		if !assigned(r, identity) {
			return ErrAccessDenied
		}
		return r.Reject()
	})
}

func requireProvider(identity *domain.Identity) (int64, error) {
	if identity.ProviderID == nil {
		return 0, ErrProviderProfileRequired
	}
	return *identity.ProviderID, nil
}

func assigned(r *domain.ServiceRequest, identity *domain.Identity) bool {
	return identity.ProviderID != nil && r.IsAssignedTo(*identity.ProviderID)
}

// mutate загружает заявку с блокировкой, применяет change и сохраняет результат
func (s *Service) mutate(
	ctx context.Context,
	op string,
	id int64,
	identity *domain.Identity,
	change func(r *domain.ServiceRequest) error,
) (*models.ServiceRequestResponse, error) {
	s.logger.Info("%s: service request id=%d by user=%d", op, id, identity.UserID)

	var result *domain.ServiceRequest

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		req, err := s.requestRepo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRepoError(op, id, err)
		}

		if err := change(req); err != nil {
			return s.mapChangeError(op, id, err)
		}

		if err := s.requestRepo.Update(txCtx, req); err != nil {
			return s.mapRepoError(op, id, err)
		}

		result = req
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return nil, err
		}
		s.logger.Error("%s: transaction error for request id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - transaction error: %v", ErrInternal, op, err)
	}

	s.observer.ObserveTransition(entity, string(result.Status))
	s.logger.Info("%s: service request id=%d is now %s", op, id, result.Status)
	return models.FromDomain(result, identity), nil
}

func (s *Service) mapChangeError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, ErrAccessDenied):
		s.logger.Warn("%s: access denied to request id=%d", op, id)
		return err
	case errors.Is(err, domain.ErrOTPMismatch):
		s.logger.Warn("%s: otp mismatch for request id=%d", op, id)
		return ErrOTPMismatch
	case errors.Is(err, domain.ErrInvalidTransition):
		s.logger.Warn("%s: request id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %w", ErrInvalidStatus, err)
	default:
		return fmt.Errorf("%w: %s - %v", ErrInternal, op, err)
	}
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, requestRepo.ErrRequestNotFound):
		s.logger.Warn("%s: request id=%d not found", op, id)
		return ErrRequestNotFound
	case errors.Is(err, requestRepo.ErrInvalidReference):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		s.logger.Error("%s: repository error for request id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func isServiceError(err error) bool {
	for _, target := range []error{
		ErrRequestNotFound, ErrAccessDenied, ErrInvalidStatus, ErrOTPMismatch, ErrInvalidInput, ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
