package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	bookingRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/booking"
	catalogRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/catalog"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	observer     TransitionObserver
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	observer TransitionObserver,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		observer:     observer,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: consumer=%d, service=%d, start=%s, end=%s",
		req.ConsumerID, req.ServiceID, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем интервал относительно текущего времени
	now := uc.timeProvider.Now()
	if err := validateTime(req.StartTime, req.EndTime, now); err != nil {
		uc.logger.Warn("CreateBooking: time validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	price := service.Price
	if req.AgreedPrice != nil {
		price = *req.AgreedPrice
	}

	var result *domain.Booking

	// 4. Проверка пересечений и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Активные бронирования услуги в интервале с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.GetActiveInRange(txCtx, domain.OverlapQuery{
			ServiceID: req.ServiceID,
			Start:     req.StartTime,
			End:       req.EndTime,
		})
		if err != nil {
			return err
		}

		// 4.2. Проверяем пересечение
		if conflict := domain.FindOverlap(req.StartTime, req.EndTime, existing, 0); conflict != nil {
			uc.logger.Warn("CreateBooking: service=%d slot overlaps booking id=%d", req.ServiceID, conflict.ID)
			return conflictError(conflict)
		}

		// 4.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			StartTime:         req.StartTime,
			EndTime:           req.EndTime,
			AgreedPrice:       price,
			Status:            domain.BookingPending,
			Notes:             req.Notes,
			ConsumerID:        req.ConsumerID,
			ServiceID:         service.ID,
			ServiceProviderID: service.ServiceProviderID,
		})
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingConflict):
			return nil, err
		case errors.Is(err, txmanager.ErrSerialization), errors.Is(err, bookingRepo.ErrConcurrentUpdate):
			uc.logger.Warn("CreateBooking: concurrent booking on service=%d: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: concurrent booking for the same slot", ErrBookingConflict)
		case errors.Is(err, bookingRepo.ErrInvalidReference):
			uc.logger.Warn("CreateBooking: invalid reference: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	}

	uc.observer.ObserveTransition("booking", string(result.Status))
	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:                result.ID,
		ConsumerID:        result.ConsumerID,
		ServiceID:         result.ServiceID,
		ServiceProviderID: result.ServiceProviderID,
		StartTime:         result.StartTime,
		EndTime:           result.EndTime,
		AgreedPrice:       result.AgreedPrice,
		Status:            string(result.Status),
		Notes:             result.Notes,
		CreatedAt:         result.CreatedAt,
		UpdatedAt:         result.UpdatedAt,
	}, nil
}
