package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/middleware"
	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	catalogService "github.com/Spheriverse04/ServeMee-sub000/internal/service/catalog"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/catalog/models"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/logger"
)

type fakeCatalog struct {
	CatalogService
	err      error
	listReq  *models.ListServicesRequest
	identity *domain.Identity
}

func (f *fakeCatalog) ListServices(_ context.Context, req *models.ListServicesRequest) ([]models.Service, error) {
	f.listReq = req
	return []models.Service{}, f.err
}

func (f *fakeCatalog) CreateService(_ context.Context, identity *domain.Identity, req *models.CreateServiceRequest) (*models.Service, error) {
	f.identity = identity
	if f.err != nil {
		return nil, f.err
	}
	return &models.Service{ID: 1, Name: req.Name, Price: req.Price, IsActive: true}, nil
}

func (f *fakeCatalog) DeleteService(_ context.Context, _ int64, identity *domain.Identity) error {
	f.identity = identity
	return f.err
}

func (f *fakeCatalog) DeleteCategory(_ context.Context, _ int64) error {
	return f.err
}

func request(method, target, body string, vars map[string]string, identity *domain.Identity) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	return req
}

func TestListServices_Filters(t *testing.T) {
	svc := &fakeCatalog{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.ListServices(rec, request(http.MethodGet, "/api/v1/services?serviceProviderId=3&active=true", "", nil, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.listReq.ServiceProviderID)
	assert.Equal(t, int64(3), *svc.listReq.ServiceProviderID)
	assert.Nil(t, svc.listReq.ServiceTypeID)
	assert.True(t, svc.listReq.OnlyActive)

	rec = httptest.NewRecorder()
	h.ListServices(rec, request(http.MethodGet, "/api/v1/services?active=maybe", "", nil, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateService_PassesIdentity(t *testing.T) {
	svc := &fakeCatalog{}
	h := NewHandler(svc, logger.NewNop())
	caller := &domain.Identity{UserID: 4, Role: domain.RoleServiceProvider}

	rec := httptest.NewRecorder()
	h.CreateService(rec, request(http.MethodPost, "/api/v1/services",
		`{"serviceTypeId":2,"name":"Tap repair","price":300}`, nil, caller))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Same(t, caller, svc.identity)
}

func TestErrorMapping(t *testing.T) {
	caller := &domain.Identity{UserID: 4, Role: domain.RoleServiceProvider}
	vars := map[string]string{"id": "5"}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not owner", catalogService.ErrAccessDenied, http.StatusForbidden},
		{"not found", catalogService.ErrNotFound, http.StatusNotFound},
		{"in use", catalogService.ErrInvalidReference, http.StatusConflict},
		{"internal", catalogService.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeCatalog{err: tt.err}, logger.NewNop())
			rec := httptest.NewRecorder()
			h.DeleteService(rec, request(http.MethodDelete, "/api/v1/services/5", "", vars, caller))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestDeleteCategory_ViaCRUD(t *testing.T) {
	h := NewHandler(&fakeCatalog{}, logger.NewNop())
	rec := httptest.NewRecorder()
	h.DeleteCategory(rec, request(http.MethodDelete, "/api/v1/service-categories/2", "", map[string]string{"id": "2"}, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.DeleteCategory(rec, request(http.MethodDelete, "/api/v1/service-categories/x", "", map[string]string{"id": "x"}, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
