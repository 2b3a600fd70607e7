package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/middleware"
	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	authService "github.com/Spheriverse04/ServeMee-sub000/internal/service/auth"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/auth/models"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/logger"
)

type fakeAuth struct {
	err error
}

func (f *fakeAuth) token(email, role string) (*models.TokenResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.TokenResponse{
		AccessToken: "tok",
		TokenType:   "Bearer",
		ExpiresAt:   time.Now().Add(time.Hour),
		User:        models.UserResponse{ID: 1, Email: email, Role: role},
	}, nil
}

func (f *fakeAuth) Register(_ context.Context, req *models.RegisterRequest) (*models.TokenResponse, error) {
	return f.token(req.Email, req.Role)
}

func (f *fakeAuth) Login(_ context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	return f.token(req.Email, string(domain.RoleConsumer))
}

func (f *fakeAuth) Profile(_ context.Context, identity *domain.Identity) (*models.ProfileResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ProfileResponse{User: models.UserResponse{ID: identity.UserID, Role: string(identity.Role)}}, nil
}

func do(fn http.HandlerFunc, body string, identity *domain.Identity) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	h := NewHandler(&fakeAuth{}, logger.NewNop())

	rec := do(h.Register, `{"email":"a@b.c","password":"secret123","fullName":"A","role":"service_provider"}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body models.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "tok", body.AccessToken)
	assert.Equal(t, "service_provider", body.User.Role)
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"taken", authService.ErrEmailTaken, http.StatusConflict},
		{"invalid", fmt.Errorf("%w: invalid email", authService.ErrInvalidInput), http.StatusBadRequest},
		{"internal", authService.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeAuth{err: tt.err}, logger.NewNop())
			rec := do(h.Register, `{"email":"a@b.c","password":"secret123","fullName":"A"}`, nil)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestLogin_Errors(t *testing.T) {
	h := NewHandler(&fakeAuth{err: authService.ErrInvalidCredentials}, logger.NewNop())
	assert.Equal(t, http.StatusUnauthorized, do(h.Login, `{"email":"a@b.c","password":"x"}`, nil).Code)

	h = NewHandler(&fakeAuth{err: authService.ErrAccountDisabled}, logger.NewNop())
	assert.Equal(t, http.StatusForbidden, do(h.Login, `{"email":"a@b.c","password":"x"}`, nil).Code)

	h = NewHandler(&fakeAuth{}, logger.NewNop())
	assert.Equal(t, http.StatusBadRequest, do(h.Login, `not json`, nil).Code)
}

func TestProfile(t *testing.T) {
	h := NewHandler(&fakeAuth{}, logger.NewNop())

	assert.Equal(t, http.StatusUnauthorized, do(h.Profile, "", nil).Code)

	rec := do(h.Profile, "", &domain.Identity{UserID: 8, Role: domain.RoleAdmin})
	require.Equal(t, http.StatusOK, rec.Code)
	var body models.ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(8), body.User.ID)
	assert.Nil(t, body.Provider)
}
