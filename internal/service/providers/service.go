package providers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	providerRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/provider"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/providers/models"
)

// Service профили провайдеров и их зоны обслуживания
type Service struct {
	providerRepo ProviderRepository
	localityRepo LocalityRepository
	txManager    TransactionManager
	logger       Logger
}

func NewService(providerRepo ProviderRepository, localityRepo LocalityRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		providerRepo: providerRepo,
		localityRepo: localityRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID возвращает публичный профиль провайдера
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ProviderResponse, error) {
	p, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}
	return models.FromDomain(p), nil
}

// UpdateMe обновляет профиль вызывающего провайдера
func (s *Service) UpdateMe(ctx context.Context, identity *domain.Identity, req *models.UpdateProfileRequest) (*models.ProviderResponse, error) {
	if identity.ProviderID == nil {
		return nil, ErrProviderProfileRequired
	}
	id := *identity.ProviderID

	if req.CompanyName != nil && len(strings.TrimSpace(*req.CompanyName)) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: companyName must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	var result *domain.ServiceProvider

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		p, err := s.providerRepo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRepoError("UpdateMe", id, err)
		}

		if req.CompanyName != nil {
			p.CompanyName = trimmed(*req.CompanyName)
		}
		if req.Description != nil {
			p.Description = trimmed(*req.Description)
		}

		if err := s.providerRepo.UpdateProfile(txCtx, p); err != nil {
			return s.mapRepoError("UpdateMe", id, err)
		}
		result = p
		return nil
	})
	if err != nil {
		return nil, s.txError("UpdateMe", err)
	}

	s.logger.Info("UpdateMe: updated provider id=%d", id)
	return models.FromDomain(result), nil
}

// SetMyLocalities заменяет набор населенных пунктов, где работает провайдер
func (s *Service) SetMyLocalities(ctx context.Context, identity *domain.Identity, req *models.SetLocalitiesRequest) (*models.ProviderResponse, error) {
	if identity.ProviderID == nil {
		return nil, ErrProviderProfileRequired
	}
	id := *identity.ProviderID
	ids := uniqueIDs(req.LocalityIDs)

	var result *domain.ServiceProvider

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if len(ids) > 0 {
			n, err := s.localityRepo.CountExisting(txCtx, ids)
			if err != nil {
				return fmt.Errorf("%w: SetMyLocalities - count localities: %v", ErrInternal, err)
			}
			if n != len(ids) {
				return fmt.Errorf("%w: %d of %d localities do not exist", ErrUnknownLocality, len(ids)-n, len(ids))
			}
		}

		if err := s.providerRepo.ReplaceLocalities(txCtx, id, ids); err != nil {
			return s.mapRepoError("SetMyLocalities", id, err)
		}

		p, err := s.providerRepo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRepoError("SetMyLocalities", id, err)
		}
		result = p
		return nil
	})
	if err != nil {
		return nil, s.txError("SetMyLocalities", err)
	}

	s.logger.Info("SetMyLocalities: provider id=%d now serves %d localities", id, len(ids))
	return models.FromDomain(result), nil
}

// Verify выставляет признак проверки провайдера (только администратор)
func (s *Service) Verify(ctx context.Context, id int64, req *models.VerifyRequest) (*models.ProviderResponse, error) {
	if err := s.providerRepo.SetVerified(ctx, id, req.IsVerified); err != nil {
		return nil, s.mapRepoError("Verify", id, err)
	}

	s.logger.Info("Verify: provider id=%d verified=%t", id, req.IsVerified)
	return s.GetByID(ctx, id)
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func trimmed(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, providerRepo.ErrProviderNotFound):
		s.logger.Warn("%s: provider id=%d not found", op, id)
		return ErrProviderNotFound
	case errors.Is(err, providerRepo.ErrInvalidReference):
		return fmt.Errorf("%w: %v", ErrUnknownLocality, err)
	default:
		s.logger.Error("%s: repository error for provider id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func (s *Service) txError(op string, err error) error {
	for _, target := range []error{ErrProviderNotFound, ErrUnknownLocality, ErrInvalidInput, ErrInternal} {
		if errors.Is(err, target) {
			return err
		}
	}
	s.logger.Error("%s: transaction error: %v", op, err)
	return fmt.Errorf("%w: %s - transaction error: %v", ErrInternal, op, err)
}
