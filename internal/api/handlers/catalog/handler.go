package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers"
	"github.com/Spheriverse04/ServeMee-sub000/internal/api/middleware"
	catalogService "github.com/Spheriverse04/ServeMee-sub000/internal/service/catalog"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/catalog/models"
)

const (
	msgInvalidID          = "invalid id"
	msgInvalidRequestBody = "invalid request body"
	msgUnauthorized       = "authentication required"
	msgNotFound           = "not found"
	msgAlreadyExists      = "record with this name already exists"
	msgUnknownReference   = "referenced record does not exist"
	msgInUse              = "record is still in use, deactivate it instead"
	msgForbidden          = "access denied"
	msgProviderProfile    = "service provider profile required"
)

// Handler каталог: категории, типы услуг (администратор) и услуги провайдеров
type Handler struct {
	service CatalogService
	logger  Logger
	crud    handlers.CRUD
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	h := &Handler{
		service: service,
		logger:  logger,
	}
	h.crud = handlers.CRUD{Logger: logger, OnError: h.respondError}
	return h
}

// Categories

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	handlers.Create(h.crud, w, r, "POST /service-categories", h.service.CreateCategory)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	handlers.Get(h.crud, w, r, "GET /service-categories/{id}", h.service.GetCategory)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	handlers.List(h.crud, w, r, "GET /service-categories", "", func(ctx context.Context, _ *int64) ([]models.Category, error) {
		return h.service.ListCategories(ctx)
	})
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	handlers.Update(h.crud, w, r, "PUT /service-categories/{id}", h.service.UpdateCategory)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	handlers.Delete(h.crud, w, r, "DELETE /service-categories/{id}", h.service.DeleteCategory)
}

// Service types

func (h *Handler) CreateServiceType(w http.ResponseWriter, r *http.Request) {
	handlers.Create(h.crud, w, r, "POST /service-types", h.service.CreateServiceType)
}

func (h *Handler) GetServiceType(w http.ResponseWriter, r *http.Request) {
	handlers.Get(h.crud, w, r, "GET /service-types/{id}", h.service.GetServiceType)
}

// ListServiceTypes GET /service-types?categoryId=
func (h *Handler) ListServiceTypes(w http.ResponseWriter, r *http.Request) {
	handlers.List(h.crud, w, r, "GET /service-types", "categoryId", h.service.ListServiceTypes)
}

func (h *Handler) UpdateServiceType(w http.ResponseWriter, r *http.Request) {
	handlers.Update(h.crud, w, r, "PUT /service-types/{id}", h.service.UpdateServiceType)
}

func (h *Handler) DeleteServiceType(w http.ResponseWriter, r *http.Request) {
	handlers.Delete(h.crud, w, r, "DELETE /service-types/{id}", h.service.DeleteServiceType)
}

// Services

// CreateService POST /api/v1/services (провайдер или администратор)
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.CreateService(r.Context(), identity, &req)
	if err != nil {
		h.respondError(w, "POST /services", err, false)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	handlers.Get(h.crud, w, r, "GET /services/{id}", h.service.GetService)
}

// ListServices GET /api/v1/services?serviceProviderId=&serviceTypeId=&active=true
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	var (
		req models.ListServicesRequest
		err error
	)
	if req.ServiceProviderID, err = handlers.QueryInt64(r, "serviceProviderId"); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	if req.ServiceTypeID, err = handlers.QueryInt64(r, "serviceTypeId"); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	if raw := r.URL.Query().Get("active"); raw != "" {
		if req.OnlyActive, err = strconv.ParseBool(raw); err != nil {
			handlers.RespondBadRequest(w, "invalid active flag")
			return
		}
	}

	list, err := h.service.ListServices(r.Context(), &req)
	if err != nil {
		h.respondError(w, "GET /services", err, false)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, list)
}

// UpdateService PUT /api/v1/services/{id} (владелец или администратор)
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.service.UpdateService(r.Context(), id, identity, &req)
	if err != nil {
		h.respondError(w, "PUT /services/{id}", err, false)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, updated)
}

// DeleteService DELETE /api/v1/services/{id} (владелец или администратор)
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.DeleteService(r.Context(), id, identity); err != nil {
		h.respondError(w, "DELETE /services/{id}", err, true)
		return
	}

	h.logger.Info("DELETE /services/{id} - Deleted service id=%d by user_id=%d", id, identity.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error, deleting bool) {
	switch {
	case errors.Is(err, catalogService.ErrNotFound):
		handlers.RespondNotFound(w, msgNotFound)
	case errors.Is(err, catalogService.ErrAlreadyExists):
		handlers.RespondConflict(w, msgAlreadyExists)
	case errors.Is(err, catalogService.ErrInvalidReference) && deleting:
		handlers.RespondConflict(w, msgInUse)
	case errors.Is(err, catalogService.ErrInvalidReference):
		handlers.RespondBadRequest(w, msgUnknownReference)
	case errors.Is(err, catalogService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)
	case errors.Is(err, catalogService.ErrProviderProfileRequired):
		handlers.RespondForbidden(w, msgProviderProfile)
	case errors.Is(err, catalogService.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())
	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
