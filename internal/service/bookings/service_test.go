package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	bookingRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/booking"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/bookings/models"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/logger"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/ptr"
)

type fakeRepo struct {
	bookings map[int64]*domain.Booking
	filter   domain.BookingFilter
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	f.filter = filter
	return []*domain.Booking{}, nil
}

func (f *fakeRepo) GetActiveInRange(_ context.Context, q domain.OverlapQuery) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.ServiceID == q.ServiceID && b.ID != q.ExcludeID && b.IsActive() && b.Overlaps(q.Start, q.End) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeRepo) Update(_ context.Context, b *domain.Booking) error {
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.bookings[id].Status = status
	return nil
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopObserver struct{}

func (nopObserver) ObserveTransition(string, string) {}

const (
	consumerID = int64(7)
	providerID = int64(3)
)

var (
	consumer      = &domain.Identity{UserID: consumerID, Role: domain.RoleConsumer}
	provider      = &domain.Identity{UserID: 30, Role: domain.RoleServiceProvider, ProviderID: ptr.Ptr(providerID)}
	otherProvider = &domain.Identity{UserID: 40, Role: domain.RoleServiceProvider, ProviderID: ptr.Ptr(int64(4))}
	admin         = &domain.Identity{UserID: 1, Role: domain.RoleAdmin}
	baseStart     = time.Date(2030, 8, 1, 9, 0, 0, 0, time.UTC)
)

func newService(statuses ...domain.BookingStatus) (*Service, *fakeRepo) {
	repo := &fakeRepo{bookings: map[int64]*domain.Booking{}}
	for i, st := range statuses {
		id := int64(i + 1)
		repo.bookings[id] = &domain.Booking{
			ID:                id,
			ConsumerID:        consumerID,
			ServiceID:         100,
			ServiceProviderID: providerID,
			StartTime:         baseStart.Add(time.Duration(i) * 2 * time.Hour),
			EndTime:           baseStart.Add(time.Duration(i)*2*time.Hour + time.Hour),
			AgreedPrice:       500,
			Status:            st,
		}
	}
	svc := NewService(repo, inlineTx{}, nopObserver{}, logger.NewNop())
	svc.now = func() time.Time { return baseStart.Add(-24 * time.Hour) }
	return svc, repo
}

func TestTransitions_HappyPath(t *testing.T) {
	svc, repo := newService(domain.BookingPending)
	ctx := context.Background()

	resp, err := svc.Confirm(ctx, 1, provider)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", resp.Status)

	resp, err = svc.Complete(ctx, 1, provider)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", resp.Status)
	assert.Equal(t, domain.BookingCompleted, repo.bookings[1].Status)
}

func TestCancel_CompletedBookingNamesStatus(t *testing.T) {
	svc, repo := newService(domain.BookingCompleted)

	_, err := svc.Cancel(context.Background(), 1, consumer)
	require.ErrorIs(t, err, ErrInvalidStatus)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "COMPLETED")
	assert.Equal(t, domain.BookingCompleted, repo.bookings[1].Status)
}

func TestTransitions_Ownership(t *testing.T) {
	tests := []struct {
		name     string
		status   domain.BookingStatus
		identity *domain.Identity
		call     func(*Service, context.Context, int64, *domain.Identity) (*models.BookingResponse, error)
		wantErr  error
	}{
		{"consumer cannot confirm", domain.BookingPending, consumer, (*Service).Confirm, ErrAccessDenied},
		{"other provider cannot reject", domain.BookingPending, otherProvider, (*Service).Reject, ErrAccessDenied},
		{"admin cannot cancel", domain.BookingPending, admin, (*Service).Cancel, ErrAccessDenied},
		{"provider can cancel", domain.BookingConfirmed, provider, (*Service).Cancel, nil},
		{"consumer can cancel", domain.BookingPending, consumer, (*Service).Cancel, nil},
		{"complete requires confirmed", domain.BookingPending, provider, (*Service).Complete, ErrInvalidStatus},
		{"reject requires pending", domain.BookingConfirmed, provider, (*Service).Reject, ErrInvalidStatus},
		{"rejected is terminal", domain.BookingRejected, provider, (*Service).Confirm, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(tt.status)
			_, err := tt.call(svc, context.Background(), 1, tt.identity)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetByID(t *testing.T) {
	svc, _ := newService(domain.BookingPending)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, 1, consumer)
	assert.NoError(t, err)
	_, err = svc.GetByID(ctx, 1, admin)
	assert.NoError(t, err)
	_, err = svc.GetByID(ctx, 1, otherProvider)
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, err = svc.GetByID(ctx, 42, admin)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdate_ConsumerRechecksOverlap(t *testing.T) {
	// booking 1: 09:00-10:00, booking 2: 11:00-12:00
	svc, repo := newService(domain.BookingPending, domain.BookingPending)

	_, err := svc.Update(context.Background(), 2, consumer, &models.UpdateBookingRequest{
		StartTime: ptr.Ptr(baseStart.Add(30 * time.Minute)),
	})
	require.ErrorIs(t, err, ErrBookingConflict)
	assert.Contains(t, err.Error(), "booking id=1")

	resp, err := svc.Update(context.Background(), 2, consumer, &models.UpdateBookingRequest{
		StartTime:   ptr.Ptr(baseStart.Add(time.Hour)),
		AgreedPrice: ptr.Ptr(650.0),
	})
	require.NoError(t, err)
	assert.Equal(t, baseStart.Add(time.Hour), resp.StartTime)
	assert.Equal(t, 650.0, repo.bookings[2].AgreedPrice)
}

func TestUpdate_RoleFieldRules(t *testing.T) {
	tests := []struct {
		name     string
		status   domain.BookingStatus
		identity *domain.Identity
		req      *models.UpdateBookingRequest
		wantErr  error
	}{
		{"consumer edits notes", domain.BookingPending, consumer, &models.UpdateBookingRequest{Notes: ptr.Ptr("x")}, ErrInvalidInput},
		{"provider edits price", domain.BookingPending, provider, &models.UpdateBookingRequest{AgreedPrice: ptr.Ptr(1.0)}, ErrInvalidInput},
		{"consumer edits confirmed", domain.BookingConfirmed, consumer, &models.UpdateBookingRequest{AgreedPrice: ptr.Ptr(1.0)}, ErrInvalidStatus},
		{"provider notes on terminal", domain.BookingCancelled, provider, &models.UpdateBookingRequest{Notes: ptr.Ptr("x")}, ErrInvalidStatus},
		{"stranger", domain.BookingPending, otherProvider, &models.UpdateBookingRequest{Notes: ptr.Ptr("x")}, ErrAccessDenied},
		{"empty patch", domain.BookingPending, consumer, &models.UpdateBookingRequest{}, ErrInvalidInput},
		{"end before start", domain.BookingPending, consumer, &models.UpdateBookingRequest{EndTime: ptr.Ptr(baseStart.Add(-time.Hour))}, ErrInvalidTimeRange},
		{"provider notes on confirmed", domain.BookingConfirmed, provider, &models.UpdateBookingRequest{Notes: ptr.Ptr("bring ladder")}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(tt.status)
			_, err := svc.Update(context.Background(), 1, tt.identity, tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestList_ScopesByRole(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	_, err := svc.List(ctx, &models.ListBookingsRequest{Identity: consumer, ConsumerID: ptr.Ptr(int64(99))})
	require.NoError(t, err)
	assert.Equal(t, consumerID, *repo.filter.ConsumerID)
	assert.Nil(t, repo.filter.ServiceProviderID)

	_, err = svc.List(ctx, &models.ListBookingsRequest{Identity: provider, Status: ptr.Ptr("CONFIRMED")})
	require.NoError(t, err)
	assert.Equal(t, providerID, *repo.filter.ServiceProviderID)
	assert.Equal(t, domain.BookingConfirmed, *repo.filter.Status)

	_, err = svc.List(ctx, &models.ListBookingsRequest{Identity: admin, Status: ptr.Ptr("DONE")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
