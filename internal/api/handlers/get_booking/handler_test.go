package get_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers"
	"github.com/Spheriverse04/ServeMee-sub000/internal/api/middleware"
	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/bookings"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/bookings/models"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/logger"
)

type fakeService struct {
	gotIdentity *domain.Identity
	err         error
}

func (f *fakeService) GetByID(_ context.Context, id int64, identity *domain.Identity) (*models.BookingResponse, error) {
	f.gotIdentity = identity
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, ConsumerID: identity.UserID, Status: string(domain.BookingPending)}, nil
}

func call(h *Handler, bookingID string, identity *domain.Identity) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+bookingID, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())
	identity := &domain.Identity{UserID: 4, Role: domain.RoleConsumer}

	rec := call(h, "12", identity)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Same(t, identity, svc.gotIdentity)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(12), body.ID)
	assert.Equal(t, int64(4), body.ConsumerID)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", fmt.Errorf("%w: id=12", bookings.ErrBookingNotFound), http.StatusNotFound, msgNotFound},
		{"other party", bookings.ErrAccessDenied, http.StatusForbidden, msgForbidden},
		{"internal", fmt.Errorf("%w: boom", bookings.ErrInternal), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())

			rec := call(h, "12", &domain.Identity{UserID: 1, Role: domain.RoleConsumer})

			require.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestHandle_BadRequestAndUnauthorized(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	assert.Equal(t, http.StatusBadRequest, call(h, "abc", &domain.Identity{UserID: 1}).Code)
	assert.Equal(t, http.StatusBadRequest, call(h, "-3", &domain.Identity{UserID: 1}).Code)
	assert.Equal(t, http.StatusUnauthorized, call(h, "5", nil).Code)
	assert.Nil(t, svc.gotIdentity)
}
