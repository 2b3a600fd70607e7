package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/Spheriverse04/ServeMee-sub000/internal/usecase/get_available_slots"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/logger"
)

type fakeUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	start := req.Date.Add(9 * time.Hour)
	return &getAvailableSlots.Response{
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		DurationMinutes: 60,
		Slots: []getAvailableSlots.Slot{
			{StartTime: start, EndTime: start.Add(time.Hour), Available: true},
			{StartTime: start.Add(time.Hour), EndTime: start.Add(2 * time.Hour), Available: false},
		},
	}, nil
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/services/{id:[0-9]+}/availability", NewHandler(uc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_ReturnsSlots(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, "/services/4/availability?date=2030-01-10")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(4), uc.got.ServiceID)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2030-01-10", body.Date)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, "2030-01-10T09:00:00Z", body.Slots[0].StartTime)
	assert.True(t, body.Slots[0].Available)
	assert.False(t, body.Slots[1].Available)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "missing date", target: "/services/4/availability", status: http.StatusBadRequest},
		{name: "bad date", target: "/services/4/availability?date=10.01.2030", status: http.StatusBadRequest},
		{name: "not found", target: "/services/4/availability?date=2030-01-10", err: getAvailableSlots.ErrServiceNotFound, status: http.StatusNotFound},
		{name: "inactive", target: "/services/4/availability?date=2030-01-10", err: getAvailableSlots.ErrServiceInactive, status: http.StatusBadRequest},
		{name: "horizon", target: "/services/4/availability?date=2030-01-10", err: getAvailableSlots.ErrDateTooFarInFuture, status: http.StatusBadRequest},
		{name: "internal", target: "/services/4/availability?date=2030-01-10", err: getAvailableSlots.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
