package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	catalogRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/catalog"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/logger"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/ptr"
)

type memoryBookings struct {
	bookings []*domain.Booking
	last     domain.OverlapQuery
	err      error
}

func (m *memoryBookings) GetActiveInRange(_ context.Context, q domain.OverlapQuery) ([]*domain.Booking, error) {
	m.last = q
	if m.err != nil {
		return nil, m.err
	}
	result := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.ServiceID == q.ServiceID && b.IsActive() && b.Overlaps(q.Start, q.End) {
			result = append(result, b)
		}
	}
	return result, nil
}

type stubServices map[int64]*domain.Service

func (s stubServices) GetService(_ context.Context, id int64) (*domain.Service, error) {
	if svc, ok := s[id]; ok {
		return svc, nil
	}
	return nil, catalogRepo.ErrNotFound
}

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

var testSettings = Settings{
	DayStartHour:       9,
	DayEndHour:         12,
	DefaultSlotMinutes: 60,
	MinNoticeMinutes:   30,
	AdvanceBookingDays: 14,
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 7, day, hour, minute, 0, 0, time.UTC)
}

func newTestUseCase(repo *memoryBookings, now time.Time) *UseCase {
	services := stubServices{
		1: {ID: 1, ServiceProviderID: 10, IsActive: true, DurationMinutes: ptr.Ptr(30)},
		2: {ID: 2, ServiceProviderID: 10, IsActive: true},
		3: {ID: 3, ServiceProviderID: 10, IsActive: false},
	}
	uc := NewUseCase(repo, services, testSettings, logger.NewNop())
	uc.timeProvider = fixedTime(now)
	return uc
}

func TestExecute_MarksOverlappingSlotsBusy(t *testing.T) {
	repo := &memoryBookings{bookings: []*domain.Booking{
		{ID: 1, ServiceID: 1, StartTime: at(2, 9, 30), EndTime: at(2, 10, 15), Status: domain.BookingConfirmed},
		{ID: 2, ServiceID: 1, StartTime: at(2, 11, 0), EndTime: at(2, 11, 30), Status: domain.BookingCancelled},
	}}
	uc := newTestUseCase(repo, at(1, 8, 0))

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: at(2, 0, 0)})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.DurationMinutes)
	require.Len(t, resp.Slots, 6)

	busy := map[time.Time]bool{}
	for _, s := range resp.Slots {
		busy[s.StartTime] = !s.Available
	}
	assert.False(t, busy[at(2, 9, 0)])
	assert.True(t, busy[at(2, 9, 30)])
	assert.True(t, busy[at(2, 10, 0)])
	// бронирование заканчивается в 10:15, слот 10:30 свободен
	assert.False(t, busy[at(2, 10, 30)])
	// отмененное бронирование не занимает слот
	assert.False(t, busy[at(2, 11, 0)])

	assert.Equal(t, at(2, 9, 0), repo.last.Start)
	assert.Equal(t, at(2, 12, 0), repo.last.End)
}

func TestExecute_DefaultDurationAndMinNotice(t *testing.T) {
	uc := newTestUseCase(&memoryBookings{}, at(2, 9, 45))

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 2, Date: at(2, 0, 0)})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMinutes)
	// 09:00 и 10:00 раньше now+30m
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, at(2, 11, 0), resp.Slots[0].StartTime)
	assert.Equal(t, at(2, 12, 0), resp.Slots[0].EndTime)
	assert.True(t, resp.Slots[0].Available)
}

func TestExecute_PastDateHasNoSlots(t *testing.T) {
	repo := &memoryBookings{}
	uc := newTestUseCase(repo, at(5, 8, 0))

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: at(4, 0, 0)})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Zero(t, repo.last.ServiceID)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
		repo *memoryBookings
		want error
	}{
		{name: "missing service", req: &Request{Date: at(2, 0, 0)}, repo: &memoryBookings{}, want: ErrInvalidInput},
		{name: "missing date", req: &Request{ServiceID: 1}, repo: &memoryBookings{}, want: ErrInvalidInput},
		{name: "unknown service", req: &Request{ServiceID: 99, Date: at(2, 0, 0)}, repo: &memoryBookings{}, want: ErrServiceNotFound},
		{name: "inactive service", req: &Request{ServiceID: 3, Date: at(2, 0, 0)}, repo: &memoryBookings{}, want: ErrServiceInactive},
		{name: "beyond horizon", req: &Request{ServiceID: 1, Date: at(30, 0, 0)}, repo: &memoryBookings{}, want: ErrDateTooFarInFuture},
		{name: "repository failure", req: &Request{ServiceID: 1, Date: at(2, 0, 0)}, repo: &memoryBookings{err: errors.New("boom")}, want: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(tt.repo, at(1, 8, 0))
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerateTimeSlots_StopsAtClosingTime(t *testing.T) {
	slots := generateTimeSlots(at(2, 0, 0), testSettings, 45, at(1, 0, 0))

	require.Len(t, slots, 4)
	assert.Equal(t, at(2, 9, 0), slots[0].Start)
	assert.Equal(t, at(2, 11, 15), slots[3].Start)
	assert.Equal(t, at(2, 12, 0), slots[3].End)
	assert.Equal(t, 45, slots[0].DurationMinutes())
}
