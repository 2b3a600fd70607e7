package service_requests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers"
	"github.com/Spheriverse04/ServeMee-sub000/internal/api/middleware"
	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/servicerequests"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/servicerequests/models"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/logger"
)

type fakeService struct {
	err        error
	acceptReq  *models.AcceptRequest
	nearbyReq  *models.NearbyRequest
	completeRq *models.CompleteRequest
}

func (f *fakeService) resp(id int64, status domain.ServiceRequestStatus) (*models.ServiceRequestResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ServiceRequestResponse{ID: id, Status: string(status)}, nil
}

func (f *fakeService) Create(_ context.Context, _ *domain.Identity, _ *models.CreateRequest) (*models.ServiceRequestResponse, error) {
	return f.resp(1, domain.RequestPending)
}

func (f *fakeService) GetByID(_ context.Context, id int64, _ *domain.Identity) (*models.ServiceRequestResponse, error) {
	return f.resp(id, domain.RequestPending)
}

func (f *fakeService) List(_ context.Context, _ *models.ListRequest) (*models.ServiceRequestListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ServiceRequestListResponse{ServiceRequests: []models.ServiceRequestResponse{}}, nil
}

func (f *fakeService) Nearby(_ context.Context, _ *domain.Identity, req *models.NearbyRequest) (*models.NearbyResponse, error) {
	f.nearbyReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.NearbyResponse{RadiusKm: domain.DefaultSearchRadiusKm, ServiceRequests: []models.NearbyItem{}}, nil
}

func (f *fakeService) Accept(_ context.Context, id int64, _ *domain.Identity, req *models.AcceptRequest) (*models.ServiceRequestResponse, error) {
	f.acceptReq = req
	return f.resp(id, domain.RequestAccepted)
}

func (f *fakeService) Start(_ context.Context, id int64, _ *domain.Identity) (*models.ServiceRequestResponse, error) {
	return f.resp(id, domain.RequestInProgress)
}

func (f *fakeService) Complete(_ context.Context, id int64, _ *domain.Identity, req *models.CompleteRequest) (*models.ServiceRequestResponse, error) {
	f.completeRq = req
	return f.resp(id, domain.RequestCompleted)
}

func (f *fakeService) Cancel(_ context.Context, id int64, _ *domain.Identity) (*models.ServiceRequestResponse, error) {
	return f.resp(id, domain.RequestCancelled)
}

func (f *fakeService) Reject(_ context.Context, id int64, _ *domain.Identity) (*models.ServiceRequestResponse, error) {
	return f.resp(id, domain.RequestPending)
}

var provider = &domain.Identity{UserID: 5, Role: domain.RoleServiceProvider, ProviderID: func() *int64 { v := int64(9); return &v }()}

func serve(fn http.HandlerFunc, method, target, body string, vars map[string]string, identity *domain.Identity) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func TestAccept_PassesOTP(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := serve(h.Accept, http.MethodPatch, "/api/v1/service-requests/3/accept", `{"otpCode":"042137"}`,
		map[string]string{"requestId": "3"}, provider)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.acceptReq)
	assert.Equal(t, "042137", svc.acceptReq.OTPCode)
}

func TestComplete_EmptyBodyAllowed(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := serve(h.Complete, http.MethodPatch, "/api/v1/service-requests/3/complete", "",
		map[string]string{"requestId": "3"}, provider)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.completeRq)
	assert.Nil(t, svc.completeRq.TotalCost)
}

func TestNearby_Query(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := serve(h.Nearby, http.MethodGet, "/api/v1/service-requests/nearby?latitude=12.97&longitude=77.59&radiusKm=5&serviceTypeId=2&limit=10",
		"", nil, provider)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.nearbyReq)
	assert.InDelta(t, 12.97, svc.nearbyReq.Latitude, 1e-9)
	require.NotNil(t, svc.nearbyReq.RadiusKm)
	assert.Equal(t, 5.0, *svc.nearbyReq.RadiusKm)
	require.NotNil(t, svc.nearbyReq.ServiceTypeID)
	assert.Equal(t, int64(2), *svc.nearbyReq.ServiceTypeID)
	assert.Equal(t, uint64(10), svc.nearbyReq.Limit)

	missing := serve(h.Nearby, http.MethodGet, "/api/v1/service-requests/nearby?latitude=1", "", nil, provider)
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestErrorMapping(t *testing.T) {
	transition := &domain.TransitionError{Entity: "service request", Action: "cancel", Current: "COMPLETED"}

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", servicerequests.ErrRequestNotFound, http.StatusNotFound, msgNotFound},
		{"access denied", servicerequests.ErrAccessDenied, http.StatusForbidden, msgForbidden},
		{"no profile", servicerequests.ErrProviderProfileRequired, http.StatusForbidden, msgProviderProfile},
		{"otp", servicerequests.ErrOTPMismatch, http.StatusBadRequest, msgOTPMismatch},
		{"status", fmt.Errorf("%w: %w", servicerequests.ErrInvalidStatus, transition), http.StatusBadRequest,
			"cannot cancel service request: current status is COMPLETED"},
		{"internal", servicerequests.ErrInternal, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())

			rec := serve(h.Cancel, http.MethodPatch, "/api/v1/service-requests/3/cancel", "",
				map[string]string{"requestId": "3"}, provider)

			require.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestCreate_Unauthorized(t *testing.T) {
	h := NewHandler(&fakeService{}, logger.NewNop())
	rec := serve(h.Create, http.MethodPost, "/api/v1/service-requests", `{}`, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
