package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/middleware"
	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	providerService "github.com/Spheriverse04/ServeMee-sub000/internal/service/providers"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/providers/models"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/logger"
)

type fakeProviders struct {
	err        error
	localities []int64
}

func (f *fakeProviders) GetByID(_ context.Context, id int64) (*models.ProviderResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ProviderResponse{ID: id, AverageRating: 4.3, TotalRatings: 3, LocalityIDs: []int64{}}, nil
}

func (f *fakeProviders) UpdateMe(_ context.Context, _ *domain.Identity, _ *models.UpdateProfileRequest) (*models.ProviderResponse, error) {
	return nil, f.err
}

func (f *fakeProviders) SetMyLocalities(_ context.Context, _ *domain.Identity, req *models.SetLocalitiesRequest) (*models.ProviderResponse, error) {
	f.localities = req.LocalityIDs
	if f.err != nil {
		return nil, f.err
	}
	return &models.ProviderResponse{ID: 9, LocalityIDs: req.LocalityIDs}, nil
}

func (f *fakeProviders) Verify(_ context.Context, id int64, req *models.VerifyRequest) (*models.ProviderResponse, error) {
	return &models.ProviderResponse{ID: id, IsVerified: req.IsVerified, LocalityIDs: []int64{}}, f.err
}

func TestGet(t *testing.T) {
	h := NewHandler(&fakeProviders{}, logger.NewNop())

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/service-providers/9", nil), map[string]string{"id": "9"})
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.ProviderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4.3, body.AverageRating)
	assert.Equal(t, 3, body.TotalRatings)

	h = NewHandler(&fakeProviders{err: providerService.ErrProviderNotFound}, logger.NewNop())
	rec = httptest.NewRecorder()
	h.Get(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetMyLocalities(t *testing.T) {
	svc := &fakeProviders{}
	h := NewHandler(svc, logger.NewNop())
	caller := &domain.Identity{UserID: 2, Role: domain.RoleServiceProvider}

	req := httptest.NewRequest(http.MethodPut, "/api/v1/service-providers/me/localities", strings.NewReader(`{"localityIds":[3,1,3]}`))
	req = req.WithContext(middleware.WithIdentity(req.Context(), caller))
	rec := httptest.NewRecorder()
	h.SetMyLocalities(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{3, 1, 3}, svc.localities)

	for err, status := range map[error]int{
		providerService.ErrUnknownLocality:         http.StatusBadRequest,
		providerService.ErrProviderProfileRequired: http.StatusForbidden,
	} {
		h = NewHandler(&fakeProviders{err: err}, logger.NewNop())
		req = httptest.NewRequest(http.MethodPut, "/api/v1/service-providers/me/localities", strings.NewReader(`{"localityIds":[77]}`))
		req = req.WithContext(middleware.WithIdentity(req.Context(), caller))
		rec = httptest.NewRecorder()
		h.SetMyLocalities(rec, req)
		assert.Equal(t, status, rec.Code, err.Error())
	}
}
