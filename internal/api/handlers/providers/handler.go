package providers

import (
	"errors"
	"net/http"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers"
	"github.com/Spheriverse04/ServeMee-sub000/internal/api/middleware"
	providerService "github.com/Spheriverse04/ServeMee-sub000/internal/service/providers"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/providers/models"
)

const (
	msgInvalidProviderID  = "invalid service provider id"
	msgInvalidRequestBody = "invalid request body"
	msgUnauthorized       = "authentication required"
	msgNotFound           = "service provider not found"
	msgProviderProfile    = "service provider profile required"
	msgUnknownLocality    = "one or more localities do not exist"
)

// Handler профили провайдеров /api/v1/service-providers
type Handler struct {
	service ProviderService
	logger  Logger
}

func NewHandler(service ProviderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/service-providers/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	resp, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /service-providers/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// UpdateMe PUT /api/v1/service-providers/me
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /service-providers/me - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.UpdateMe(r.Context(), identity, &req)
	if err != nil {
		h.respondError(w, "PUT /service-providers/me", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// SetMyLocalities PUT /api/v1/service-providers/me/localities, тело {"localityIds": [..]}
// Список заменяется целиком
func (h *Handler) SetMyLocalities(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.SetLocalitiesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /service-providers/me/localities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.SetMyLocalities(r.Context(), identity, &req)
	if err != nil {
		h.respondError(w, "PUT /service-providers/me/localities", err)
		return
	}

	h.logger.Info("PUT /service-providers/me/localities - provider_id=%d serves %d localities", resp.ID, len(resp.LocalityIDs))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Verify PATCH /api/v1/service-providers/{id}/verify (администратор)
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	var req models.VerifyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Verify(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PATCH /service-providers/{id}/verify", err)
		return
	}

	h.logger.Info("PATCH /service-providers/{id}/verify - provider_id=%d verified=%t", id, resp.IsVerified)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, providerService.ErrProviderNotFound):
		handlers.RespondNotFound(w, msgNotFound)
	case errors.Is(err, providerService.ErrProviderProfileRequired):
		handlers.RespondForbidden(w, msgProviderProfile)
	case errors.Is(err, providerService.ErrUnknownLocality):
		handlers.RespondBadRequest(w, msgUnknownLocality)
	case errors.Is(err, providerService.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())
	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
