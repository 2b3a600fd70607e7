package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	catalogRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/catalog"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/catalog/models"
)

// Service каталог: категории и типы услуг (справочник администратора)
// и услуги провайдеров
type Service struct {
	repo   Repository
	logger Logger
}

func NewService(repo Repository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ---------- Categories ----------

func (s *Service) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error) {
	name, err := validName(req.Name)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateCategory(ctx, &domain.ServiceCategory{Name: name, Description: trimmed(req.Description)})
	if err != nil {
		return nil, s.mapError("CreateCategory", err)
	}

	s.logger.Info("CreateCategory: created category id=%d (%s)", created.ID, created.Name)
	resp := models.FromCategory(created)
	return &resp, nil
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, s.mapError("GetCategory", err)
	}
	resp := models.FromCategory(c)
	return &resp, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	list, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, s.mapError("ListCategories", err)
	}
	result := make([]models.Category, 0, len(list))
	for _, c := range list {
		result = append(result, models.FromCategory(c))
	}
	return result, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, req *models.CategoryRequest) (*models.Category, error) {
	name, err := validName(req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCategory(ctx, &domain.ServiceCategory{ID: id, Name: name, Description: trimmed(req.Description)}); err != nil {
		return nil, s.mapError("UpdateCategory", err)
	}
	return s.GetCategory(ctx, id)
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return s.mapError("DeleteCategory", err)
	}
	s.logger.Info("DeleteCategory: deleted category id=%d", id)
	return nil
}

// ---------- Service types ----------

func (s *Service) CreateServiceType(ctx context.Context, req *models.ServiceTypeRequest) (*models.ServiceType, error) {
	t, err := serviceTypeFromRequest(req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateServiceType(ctx, t)
	if err != nil {
		return nil, s.mapError("CreateServiceType", err)
	}

	s.logger.Info("CreateServiceType: created type id=%d in category id=%d", created.ID, created.CategoryID)
	resp := models.FromServiceType(created)
	return &resp, nil
}

func (s *Service) GetServiceType(ctx context.Context, id int64) (*models.ServiceType, error) {
	t, err := s.repo.GetServiceType(ctx, id)
	if err != nil {
		return nil, s.mapError("GetServiceType", err)
	}
	resp := models.FromServiceType(t)
	return &resp, nil
}

func (s *Service) ListServiceTypes(ctx context.Context, categoryID *int64) ([]models.ServiceType, error) {
	list, err := s.repo.ListServiceTypes(ctx, categoryID)
	if err != nil {
		return nil, s.mapError("ListServiceTypes", err)
	}
	result := make([]models.ServiceType, 0, len(list))
	for _, t := range list {
		result = append(result, models.FromServiceType(t))
	}
	return result, nil
}

func (s *Service) UpdateServiceType(ctx context.Context, id int64, req *models.ServiceTypeRequest) (*models.ServiceType, error) {
	t, err := serviceTypeFromRequest(req)
	if err != nil {
		return nil, err
	}
	t.ID = id

	if err := s.repo.UpdateServiceType(ctx, t); err != nil {
		return nil, s.mapError("UpdateServiceType", err)
	}
	return s.GetServiceType(ctx, id)
}

func (s *Service) DeleteServiceType(ctx context.Context, id int64) error {
	if err := s.repo.DeleteServiceType(ctx, id); err != nil {
		return s.mapError("DeleteServiceType", err)
	}
	s.logger.Info("DeleteServiceType: deleted type id=%d", id)
	return nil
}

func serviceTypeFromRequest(req *models.ServiceTypeRequest) (*domain.ServiceType, error) {
	name, err := validName(req.Name)
	if err != nil {
		return nil, err
	}
	if req.CategoryID <= 0 {
		return nil, fmt.Errorf("%w: categoryId is required", ErrInvalidInput)
	}
	if req.BasePrice != nil && *req.BasePrice < 0 {
		return nil, fmt.Errorf("%w: basePrice must not be negative", ErrInvalidInput)
	}
	return &domain.ServiceType{
		CategoryID:  req.CategoryID,
		Name:        name,
		Description: trimmed(req.Description),
		BasePrice:   req.BasePrice,
	}, nil
}

// ---------- Services ----------

// CreateService создает услугу от имени провайдера
// Администратор обязан указать serviceProviderId
func (s *Service) CreateService(ctx context.Context, identity *domain.Identity, req *models.CreateServiceRequest) (*models.Service, error) {
	var providerID int64
	switch {
	case identity.IsAdmin():
		if req.ServiceProviderID == nil {
			return nil, fmt.Errorf("%w: serviceProviderId is required", ErrInvalidInput)
		}
		providerID = *req.ServiceProviderID
	case identity.ProviderID != nil:
		providerID = *identity.ProviderID
	default:
		return nil, ErrProviderProfileRequired
	}

	name, err := validName(req.Name)
	if err != nil {
		return nil, err
	}
	if req.ServiceTypeID <= 0 {
		return nil, fmt.Errorf("%w: serviceTypeId is required", ErrInvalidInput)
	}
	if err := validPriceAndDuration(&req.Price, req.DurationMinutes); err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	created, err := s.repo.CreateService(ctx, &domain.Service{
		ServiceProviderID: providerID,
		ServiceTypeID:     req.ServiceTypeID,
		Name:              name,
		Description:       trimmed(req.Description),
		Price:             req.Price,
		DurationMinutes:   req.DurationMinutes,
		IsActive:          active,
	})
	if err != nil {
		return nil, s.mapError("CreateService", err)
	}

	s.logger.Info("CreateService: created service id=%d for provider id=%d", created.ID, providerID)
	resp := models.FromService(created)
	return &resp, nil
}

func (s *Service) GetService(ctx context.Context, id int64) (*models.Service, error) {
	svc, err := s.repo.GetService(ctx, id)
	if err != nil {
		return nil, s.mapError("GetService", err)
	}
	resp := models.FromService(svc)
	return &resp, nil
}

func (s *Service) ListServices(ctx context.Context, req *models.ListServicesRequest) ([]models.Service, error) {
	list, err := s.repo.ListServices(ctx, catalogRepo.ServiceFilter{
		ServiceProviderID: req.ServiceProviderID,
		ServiceTypeID:     req.ServiceTypeID,
		OnlyActive:        req.OnlyActive,
	})
	if err != nil {
		return nil, s.mapError("ListServices", err)
	}
	result := make([]models.Service, 0, len(list))
	for _, svc := range list {
		result = append(result, models.FromService(svc))
	}
	return result, nil
}

// UpdateService применяет частичное обновление (владелец или администратор)
func (s *Service) UpdateService(ctx context.Context, id int64, identity *domain.Identity, req *models.UpdateServiceRequest) (*models.Service, error) {
	svc, err := s.owned(ctx, "UpdateService", id, identity)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name, err := validName(*req.Name)
		if err != nil {
			return nil, err
		}
		svc.Name = name
	}
	if req.ServiceTypeID != nil {
		svc.ServiceTypeID = *req.ServiceTypeID
	}
	if req.Description != nil {
		svc.Description = trimmed(req.Description)
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = req.DurationMinutes
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if err := validPriceAndDuration(&svc.Price, svc.DurationMinutes); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateService(ctx, svc); err != nil {
		return nil, s.mapError("UpdateService", err)
	}

	s.logger.Info("UpdateService: updated service id=%d", id)
	return s.GetService(ctx, id)
}

// DeleteService удаляет услугу (владелец или администратор)
// Услугу с бронированиями удалить нельзя, ее следует деактивировать
func (s *Service) DeleteService(ctx context.Context, id int64, identity *domain.Identity) error {
	if _, err := s.owned(ctx, "DeleteService", id, identity); err != nil {
		return err
	}

	if err := s.repo.DeleteService(ctx, id); err != nil {
		return s.mapError("DeleteService", err)
	}

	s.logger.Info("DeleteService: deleted service id=%d", id)
	return nil
}

func (s *Service) owned(ctx context.Context, op string, id int64, identity *domain.Identity) (*domain.Service, error) {
	svc, err := s.repo.GetService(ctx, id)
	if err != nil {
		return nil, s.mapError(op, err)
	}
	if !identity.IsAdmin() && !identity.IsProvider(svc.ServiceProviderID) {
		s.logger.Warn("%s: user=%d is not the owner of service id=%d", op, identity.UserID, id)
		return nil, ErrAccessDenied
	}
	return svc, nil
}

// ---------- helpers ----------

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > domain.MaxNameLength {
		return "", fmt.Errorf("%w: name is required and must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return name, nil
}

func validPriceAndDuration(price *float64, duration *int) error {
	if price != nil && *price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if duration != nil && *duration <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func (s *Service) mapError(op string, err error) error {
	switch {
	case errors.Is(err, catalogRepo.ErrNotFound):
		s.logger.Warn("%s: not found", op)
		return ErrNotFound
	case errors.Is(err, catalogRepo.ErrAlreadyExists):
		s.logger.Warn("%s: %v", op, err)
		return ErrAlreadyExists
	case errors.Is(err, catalogRepo.ErrInvalidReference):
		s.logger.Warn("%s: %v", op, err)
		return ErrInvalidReference
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
