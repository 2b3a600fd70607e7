package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	catalogRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/catalog"
)

// UseCase use case для получения слотов услуги на дату
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}
	if err := validateSettings(uc.settings); err != nil {
		uc.logger.Error("GetAvailableSlots: %v", err)
		return nil, err
	}

	// 2. Текущее время и горизонт бронирования
	now := uc.timeProvider.Now().UTC()
	date := domain.StartOfDay(req.Date.UTC())
	if err := validateDate(date, now, uc.settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	duration := uc.settings.DefaultSlotMinutes
	if service.DurationMinutes != nil && *service.DurationMinutes > 0 {
		duration = *service.DurationMinutes
	}

	resp := &Response{
		ServiceID:       service.ID,
		Date:            date,
		DurationMinutes: duration,
		Slots:           []Slot{},
	}

	// 4. Генерируем слоты
	timeSlots := generateTimeSlots(date, uc.settings, duration, now)
	if len(timeSlots) == 0 {
		uc.logger.Info("GetAvailableSlots: no slots left for service=%d on %s", service.ID, date.Format(domain.DateFormat))
		return resp, nil
	}

	// 5. Активные бронирования услуги внутри окна
	from, to := windowOf(timeSlots)
	bookings, err := uc.bookingRepo.GetActiveInRange(ctx, domain.OverlapQuery{
		ServiceID: service.ID,
		Start:     from,
		End:       to,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Вычисляем доступность
	for _, s := range markAvailability(timeSlots, bookings) {
		resp.Slots = append(resp.Slots, Slot{StartTime: s.Start, EndTime: s.End, Available: s.Available})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%d, date=%s",
		len(resp.Slots), service.ID, date.Format(domain.DateFormat))

	return resp, nil
}
