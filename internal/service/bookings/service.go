package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	bookingRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/booking"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/bookings/models"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/txmanager"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	observer    TransitionObserver
	logger      Logger
	now         func() time.Time
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	observer TransitionObserver,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		observer:    observer,
		logger:      logger,
		now:         time.Now,
	}
}

// GetByID получает бронирование по ID
// Доступно заказчику, провайдеру услуги и администратору
func (s *Service) GetByID(ctx context.Context, id int64, identity *domain.Identity) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, identity.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !identity.IsAdmin() && !isParty(booking, identity) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", identity.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования в зависимости от роли вызывающего
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for user=%d role=%s", req.Identity.UserID, req.Identity.Role)

	filter := domain.BookingFilter{
		ServiceID: req.ServiceID,
		Limit:     req.Limit,
		Offset:    req.Offset,
	}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s for user=%d", *req.Status, req.Identity.UserID)
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	switch req.Identity.Role {
	case domain.RoleAdmin:
		filter.ConsumerID = req.ConsumerID
		filter.ServiceProviderID = req.ServiceProviderID
	case domain.RoleServiceProvider:
		if req.Identity.ProviderID == nil {
			return models.FromDomainBookingList(nil), nil
		}
		filter.ServiceProviderID = req.Identity.ProviderID
	default:
		filter.ConsumerID = &req.Identity.UserID
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.Identity.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings for user=%d", len(bookings), req.Identity.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// Update изменяет бронирование
// Заказчик меняет время и цену, пока бронирование PENDING (с повторной проверкой пересечений)
// Провайдер меняет заметки, пока бронирование не в терминальном статусе
func (s *Service) Update(ctx context.Context, id int64, identity *domain.Identity, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d by user=%d", id, identity.UserID)

	if !req.HasConsumerFields() && !req.HasProviderFields() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.AgreedPrice != nil && *req.AgreedPrice < 0 {
		return nil, fmt.Errorf("%w: agreedPrice must not be negative", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "Update", id)
		if err != nil {
			return err
		}

		switch {
		case booking.ConsumerID == identity.UserID:
			if err := s.applyConsumerPatch(txCtx, booking, req); err != nil {
				return err
			}
		case identity.IsProvider(booking.ServiceProviderID):
			if err := applyProviderPatch(booking, req); err != nil {
				return err
			}
		default:
			s.logger.Warn("Update: access denied for user=%d to booking id=%d", identity.UserID, id)
			return ErrAccessDenied
		}

		if err := s.bookingRepo.Update(txCtx, booking); err != nil {
			return s.mapRepoError("Update", id, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, s.mapTxError("Update", id, err)
	}

	s.logger.Info("Update: successfully updated booking id=%d", id)
	return models.FromDomainBooking(result), nil
}

func (s *Service) applyConsumerPatch(ctx context.Context, booking *domain.Booking, req *models.UpdateBookingRequest) error {
	if req.HasProviderFields() {
		return fmt.Errorf("%w: consumer may only change startTime, endTime and agreedPrice", ErrInvalidInput)
	}
	if booking.Status != domain.BookingPending {
		return fmt.Errorf("%w: %w", ErrInvalidStatus, &domain.TransitionError{
			Entity: "booking", Action: "edit", Current: string(booking.Status),
		})
	}

	if req.AgreedPrice != nil {
		booking.AgreedPrice = *req.AgreedPrice
	}

	if req.StartTime == nil && req.EndTime == nil {
		return nil
	}

	start, end := booking.StartTime, booking.EndTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}

	if err := domain.ValidateBookingTime(start, end, s.now()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	existing, err := s.bookingRepo.GetActiveInRange(ctx, domain.OverlapQuery{
		ServiceID: booking.ServiceID,
		Start:     start,
		End:       end,
		ExcludeID: booking.ID,
	})
	if err != nil {
		return s.mapRepoError("Update", booking.ID, err)
	}

	if conflict := domain.FindOverlap(start, end, existing, booking.ID); conflict != nil {
		s.logger.Warn("Update: booking id=%d overlaps booking id=%d", booking.ID, conflict.ID)
		return fmt.Errorf("%w: booking id=%d from %s to %s", ErrBookingConflict, conflict.ID,
			conflict.StartTime.UTC().Format(time.RFC3339), conflict.EndTime.UTC().Format(time.RFC3339))
	}

	booking.StartTime, booking.EndTime = start, end
	return nil
}

func applyProviderPatch(booking *domain.Booking, req *models.UpdateBookingRequest) error {
	if req.HasConsumerFields() {
		return fmt.Errorf("%w: provider may only change notes", ErrInvalidInput)
	}
	if booking.IsTerminal() {
		return fmt.Errorf("%w: %w", ErrInvalidStatus, &domain.TransitionError{
			Entity: "booking", Action: "edit", Current: string(booking.Status),
		})
	}
	booking.Notes = req.Notes
	return nil
}

// Confirm подтверждает бронирование (провайдер, только из PENDING)
func (s *Service) Confirm(ctx context.Context, id int64, identity *domain.Identity) (*models.BookingResponse, error) {
	return s.transition(ctx, "Confirm", id, identity, domain.BookingConfirmed, "confirm", providerOnly)
}

// Reject отклоняет бронирование (провайдер, только из PENDING)
func (s *Service) Reject(ctx context.Context, id int64, identity *domain.Identity) (*models.BookingResponse, error) {
	return s.transition(ctx, "Reject", id, identity, domain.BookingRejected, "reject", providerOnly)
}

// Complete завершает бронирование (провайдер, только из CONFIRMED)
func (s *Service) Complete(ctx context.Context, id int64, identity *domain.Identity) (*models.BookingResponse, error) {
	return s.transition(ctx, "Complete", id, identity, domain.BookingCompleted, "complete", providerOnly)
}

// Cancel отменяет бронирование (заказчик или провайдер, из PENDING или CONFIRMED)
func (s *Service) Cancel(ctx context.Context, id int64, identity *domain.Identity) (*models.BookingResponse, error) {
	return s.transition(ctx, "Cancel", id, identity, domain.BookingCancelled, "cancel", anyParty)
}

type actorCheck func(b *domain.Booking, identity *domain.Identity) bool

func providerOnly(b *domain.Booking, identity *domain.Identity) bool {
	return identity.IsProvider(b.ServiceProviderID)
}

func anyParty(b *domain.Booking, identity *domain.Identity) bool {
	return isParty(b, identity)
}

func isParty(b *domain.Booking, identity *domain.Identity) bool {
	return b.ConsumerID == identity.UserID || identity.IsProvider(b.ServiceProviderID)
}

// transition проверяет права и текущий статус, затем сохраняет новый статус
// Строка блокируется на время проверки (FOR UPDATE внутри транзакции)
func (s *Service) transition(
	ctx context.Context,
	op string,
	id int64,
	identity *domain.Identity,
	next domain.BookingStatus,
	action string,
	allowed actorCheck,
) (*models.BookingResponse, error) {
	s.logger.Info("%s: booking id=%d by user=%d", op, id, identity.UserID)

	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, op, id)
		if err != nil {
			return err
		}

		if !allowed(booking, identity) {
			s.logger.Warn("%s: access denied for user=%d to booking id=%d", op, identity.UserID, id)
			return ErrAccessDenied
		}

		if err := booking.TransitionTo(next, action); err != nil {
			s.logger.Warn("%s: booking id=%d: %v", op, id, err)
			return fmt.Errorf("%w: %w", ErrInvalidStatus, err)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, next); err != nil {
			return s.mapRepoError(op, id, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, s.mapTxError(op, id, err)
	}

	s.observer.ObserveTransition("booking", string(next))
	s.logger.Info("%s: booking id=%d is now %s", op, id, next)
	return models.FromDomainBooking(result), nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return booking, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found", op, id)
		return ErrBookingNotFound
	}
	if errors.Is(err, bookingRepo.ErrConcurrentUpdate) {
		return fmt.Errorf("%w: %v", ErrBookingConflict, err)
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// mapTxError пропускает ошибки сервиса и переводит ошибки транзакции
func (s *Service) mapTxError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrBookingConflict),
		errors.Is(err, ErrInvalidTimeRange),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInternal):
		return err
	case errors.Is(err, txmanager.ErrSerialization):
		s.logger.Warn("%s: concurrent update of booking id=%d", op, id)
		return fmt.Errorf("%w: concurrent update", ErrBookingConflict)
	default:
		s.logger.Error("%s: transaction error for booking id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - transaction error: %v", ErrInternal, op, err)
	}
}
