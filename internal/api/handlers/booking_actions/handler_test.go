package booking_actions

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
	err error
}

func (f *fakeService) result(id int64, status domain.BookingStatus) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: string(status)}, nil
}

func (f *fakeService) Confirm(_ context.Context, id int64, _ *domain.Identity) (*models.BookingResponse, error) {
	return f.result(id, domain.BookingConfirmed)
}

func (f *fakeService) Reject(_ context.Context, id int64, _ *domain.Identity) (*models.BookingResponse, error) {
	return f.result(id, domain.BookingRejected)
}

func (f *fakeService) Complete(_ context.Context, id int64, _ *domain.Identity) (*models.BookingResponse, error) {
	return f.result(id, domain.BookingCompleted)
}

func (f *fakeService) Cancel(_ context.Context, id int64, _ *domain.Identity) (*models.BookingResponse, error) {
	return f.result(id, domain.BookingCancelled)
}

func call(h *Handler, bookingID string, identity *domain.Identity) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/"+h.name, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	h := NewConfirmHandler(&fakeService{}, logger.NewNop())

	rec := call(h, "7", &domain.Identity{UserID: 2, Role: domain.RoleServiceProvider})

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.ID)
	assert.Equal(t, string(domain.BookingConfirmed), body.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	transition := &domain.TransitionError{Entity: "booking", Action: "cancel", Current: string(domain.BookingCompleted)}

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound, msgNotFound},
		{"access denied", bookings.ErrAccessDenied, http.StatusForbidden, msgForbidden},
		{"transition names status", fmt.Errorf("%w: %w", bookings.ErrInvalidStatus, transition), http.StatusBadRequest,
			"cannot cancel booking: current status is COMPLETED"},
		{"status without details", bookings.ErrInvalidStatus, http.StatusBadRequest, msgInvalidStatus},
		{"conflict", bookings.ErrBookingConflict, http.StatusConflict, bookings.ErrBookingConflict.Error()},
		{"internal", fmt.Errorf("%w: boom", bookings.ErrInternal), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCancelHandler(&fakeService{err: tt.err}, logger.NewNop())

			rec := call(h, "1", &domain.Identity{UserID: 1, Role: domain.RoleConsumer})

			require.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestHandle_BadRequestAndUnauthorized(t *testing.T) {
	h := NewRejectHandler(&fakeService{}, logger.NewNop())

	assert.Equal(t, http.StatusBadRequest, call(h, "abc", &domain.Identity{UserID: 1}).Code)
	assert.Equal(t, http.StatusBadRequest, call(h, "0", &domain.Identity{UserID: 1}).Code)
	assert.Equal(t, http.StatusUnauthorized, call(h, "5", nil).Code)
}
