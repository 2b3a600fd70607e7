package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	providerRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/provider"
	reviewRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/review"
	requestRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/servicerequest"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/reviews/models"
)

// Service сервис отзывов и рейтинга провайдеров
type Service struct {
	reviewRepo   ReviewRepository
	requestRepo  RequestRepository
	providerRepo ProviderRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	requestRepo RequestRepository,
	providerRepo ProviderRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo:   reviewRepo,
		requestRepo:  requestRepo,
		providerRepo: providerRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create оставляет отзыв на завершенную заявку и пересчитывает рейтинг провайдера
func (s *Service) Create(ctx context.Context, identity *domain.Identity, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Create: review for request id=%d by user=%d", req.ServiceRequestID, identity.UserID)

	if err := domain.ValidateRating(req.Rating); err != nil {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	text, err := normalizeText(req.ReviewText)
	if err != nil {
		return nil, err
	}

	var created *domain.RatingReview

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		request, err := s.requestRepo.GetByID(txCtx, req.ServiceRequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: Create - get service request: %v", ErrInternal, err)
		}

		if request.ConsumerID != identity.UserID {
			return ErrAccessDenied
		}
		if request.Status != domain.RequestCompleted || request.ServiceProviderID == nil {
			return fmt.Errorf("%w: current status is %s", ErrRequestNotCompleted, request.Status)
		}

		created, err = s.reviewRepo.Create(txCtx, &domain.RatingReview{
			ServiceRequestID:  request.ID,
			ConsumerID:        identity.UserID,
			ServiceProviderID: *request.ServiceProviderID,
			Rating:            req.Rating,
			ReviewText:        text,
			IsVerified:        true,
		})
		if err != nil {
			return s.mapRepoError("Create", 0, err)
		}

		return s.recompute(txCtx, created.ServiceProviderID)
	})
	if err != nil {
		return nil, s.txError("Create", err)
	}

	s.logger.Info("Create: created review id=%d for provider id=%d", created.ID, created.ServiceProviderID)
	return models.FromDomain(created), nil
}

// GetByID возвращает отзыв (публично)
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReviewResponse, error) {
	rv, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}
	return models.FromDomain(rv), nil
}

// ListByProvider возвращает отзывы о провайдере, новые первыми
func (s *Service) ListByProvider(ctx context.Context, providerID int64, limit, offset uint64) (*models.ReviewListResponse, error) {
	if _, err := s.providerRepo.GetByID(ctx, providerID); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, ErrProviderNotFound
		}
		s.logger.Error("ListByProvider: failed to get provider id=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListByProvider - get provider: %v", ErrInternal, err)
	}

	list, err := s.reviewRepo.ListByProvider(ctx, providerID, domain.NormalizeLimit(limit), offset)
	if err != nil {
		return nil, s.mapRepoError("ListByProvider", 0, err)
	}

	return models.FromDomainList(list), nil
}

// Update меняет оценку или текст своего отзыва
func (s *Service) Update(ctx context.Context, id int64, identity *domain.Identity, req *models.UpdateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Update: review id=%d by user=%d", id, identity.UserID)

	if req.Rating == nil && req.ReviewText == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.Rating != nil {
		if err := domain.ValidateRating(*req.Rating); err != nil {
			return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
		}
	}
	text, err := normalizeText(req.ReviewText)
	if err != nil {
		return nil, err
	}

	var result *domain.RatingReview

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		rv, err := s.reviewRepo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRepoError("Update", id, err)
		}
		if rv.ConsumerID != identity.UserID {
			return ErrAccessDenied
		}

		ratingChanged := req.Rating != nil && *req.Rating != rv.Rating
		if req.Rating != nil {
			rv.Rating = *req.Rating
		}
		if req.ReviewText != nil {
			rv.ReviewText = text
		}

		if err := s.reviewRepo.Update(txCtx, rv); err != nil {
			return s.mapRepoError("Update", id, err)
		}
		result = rv

		if !ratingChanged {
			return nil
		}
		return s.recompute(txCtx, rv.ServiceProviderID)
	})
	if err != nil {
		return nil, s.txError("Update", err)
	}

	return models.FromDomain(result), nil
}

// Delete удаляет отзыв: автор или администратор
func (s *Service) Delete(ctx context.Context, id int64, identity *domain.Identity) error {
	s.logger.Info("Delete: review id=%d by user=%d", id, identity.UserID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		rv, err := s.reviewRepo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRepoError("Delete", id, err)
		}
		if rv.ConsumerID != identity.UserID && !identity.IsAdmin() {
			return ErrAccessDenied
		}

		if err := s.reviewRepo.Delete(txCtx, id); err != nil {
			return s.mapRepoError("Delete", id, err)
		}

		return s.recompute(txCtx, rv.ServiceProviderID)
	})
	if err != nil {
		return s.txError("Delete", err)
	}

	return nil
}

// MarkHelpful увеличивает счетчик "полезно"
// Каждый пользователь голосует один раз, автор отзыва голосовать не может
func (s *Service) MarkHelpful(ctx context.Context, id int64, identity *domain.Identity) (*models.HelpfulResponse, error) {
	var count int

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		rv, err := s.reviewRepo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRepoError("MarkHelpful", id, err)
		}
		if rv.ConsumerID == identity.UserID {
			return ErrOwnReview
		}

		added, err := s.reviewRepo.AddHelpfulVote(txCtx, id, identity.UserID)
		if err != nil {
			return s.mapRepoError("MarkHelpful", id, err)
		}
		if !added {
			return ErrAlreadyVoted
		}

		count, err = s.reviewRepo.IncrementHelpful(txCtx, id)
		if err != nil {
			return s.mapRepoError("MarkHelpful", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.txError("MarkHelpful", err)
	}

	s.logger.Info("MarkHelpful: review id=%d voted by user=%d, count=%d", id, identity.UserID, count)
	return &models.HelpfulResponse{ID: id, HelpfulCount: count}, nil
}

// recompute пересчитывает рейтинг по всем подтвержденным отзывам провайдера
// Строка провайдера блокируется, чтобы параллельные пересчеты не перетирали друг друга
func (s *Service) recompute(ctx context.Context, providerID int64) error {
	if _, err := s.providerRepo.GetByID(ctx, providerID); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return ErrProviderNotFound
		}
		return fmt.Errorf("%w: recompute - lock provider: %v", ErrInternal, err)
	}

	ratings, err := s.reviewRepo.VerifiedRatings(ctx, providerID)
	if err != nil {
		return fmt.Errorf("%w: recompute - load ratings: %v", ErrInternal, err)
	}

	summary := domain.AggregateRatings(ratings)
	if err := s.providerRepo.UpdateRating(ctx, providerID, summary); err != nil {
		return fmt.Errorf("%w: recompute - update provider: %v", ErrInternal, err)
	}

	s.logger.Info("recompute: provider id=%d rating=%.1f total=%d", providerID, summary.AverageRating, summary.TotalRatings)
	return nil
}

func normalizeText(text *string) (*string, error) {
	if text == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*text)
	if len(trimmed) > domain.MaxReviewTextLength {
		return nil, fmt.Errorf("%w: reviewText must be at most %d characters", ErrInvalidInput, domain.MaxReviewTextLength)
	}
	if trimmed == "" {
		return nil, nil
	}
	return &trimmed, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, reviewRepo.ErrReviewNotFound):
		s.logger.Warn("%s: review id=%d not found", op, id)
		return ErrReviewNotFound
	case errors.Is(err, reviewRepo.ErrReviewAlreadyExists):
		s.logger.Warn("%s: %v", op, err)
		return ErrReviewAlreadyExists
	case errors.Is(err, reviewRepo.ErrInvalidReference):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func (s *Service) txError(op string, err error) error {
	for _, target := range []error{
		ErrReviewNotFound, ErrRequestNotFound, ErrProviderNotFound, ErrAccessDenied,
		ErrRequestNotCompleted, ErrReviewAlreadyExists, ErrOwnReview, ErrAlreadyVoted, ErrInvalidInput, ErrInternal,
	} {
		if errors.Is(err, target) {
			if target == ErrAccessDenied || target == ErrRequestNotCompleted || target == ErrOwnReview {
				s.logger.Warn("%s: %v", op, err)
			}
			return err
		}
	}
	s.logger.Error("%s: transaction error: %v", op, err)
	return fmt.Errorf("%w: %s - transaction error: %v", ErrInternal, op, err)
}
