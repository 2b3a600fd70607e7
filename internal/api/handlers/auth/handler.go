package auth

import (
	"errors"
	"net/http"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers"
	"github.com/Spheriverse04/ServeMee-sub000/internal/api/middleware"
	authService "github.com/Spheriverse04/ServeMee-sub000/internal/service/auth"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidCredentials = "invalid email or password"
	msgEmailTaken         = "email is already registered"
	msgAccountDisabled    = "account is disabled"
	msgUnauthorized       = "authentication required"
)

// Handler ручки /api/v1/auth
type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register POST /api/v1/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrEmailTaken):
			handlers.RespondConflict(w, msgEmailTaken)
		case errors.Is(err, authService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /auth/register - Failed to register: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/register - Registered user_id=%d, role=%s", resp.User.ID, resp.User.Role)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// Login POST /api/v1/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidCredentials):
			handlers.RespondUnauthorized(w, msgInvalidCredentials)
		case errors.Is(err, authService.ErrAccountDisabled):
			handlers.RespondForbidden(w, msgAccountDisabled)
		default:
			h.logger.Error("POST /auth/login - Failed to login: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Profile GET /api/v1/auth/profile
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	resp, err := h.service.Profile(r.Context(), identity)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgUnauthorized)
		default:
			h.logger.Error("GET /auth/profile - Failed to load profile: user_id=%d, error=%v", identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
