package service_requests

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers"
	"github.com/Spheriverse04/ServeMee-sub000/internal/api/middleware"
	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/servicerequests"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/servicerequests/models"
)

const (
	msgInvalidRequestID      = "invalid service request id"
	msgInvalidRequestBody    = "invalid request body"
	msgUnauthorized          = "authentication required"
	msgNotFound              = "service request not found"
	msgServiceTypeNotFound   = "service type not found"
	msgForbidden             = "access denied"
	msgProviderProfile       = "service provider profile required"
	msgOTPMismatch           = "otp code does not match"
	msgInvalidStatus         = "operation is not allowed in the current service request status"
	msgLatitudeLongitudeReqd = "latitude and longitude are required"
)

// Handler ручки заявок на обслуживание /api/v1/service-requests
type Handler struct {
	service ServiceRequestService
	logger  Logger
}

func NewHandler(service ServiceRequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/service-requests (заказчик)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req models.CreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /service-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.Create(r.Context(), identity, &req)
	if err != nil {
		h.respondError(w, "POST /service-requests", 0, identity, err)
		return
	}

	h.logger.Info("POST /service-requests - Created: request_id=%d, consumer_id=%d", created.ID, identity.UserID)
	handlers.RespondJSON(w, http.StatusCreated, created)
}

// Get GET /api/v1/service-requests/{requestId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := h.identityAndID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(r.Context(), id, identity)
	if err != nil {
		h.respondError(w, "GET /service-requests/{id}", id, identity, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// List GET /api/v1/service-requests?status=&limit=&offset=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	limit, offset, err := handlers.Pagination(r)
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	resp, err := h.service.List(r.Context(), &models.ListRequest{
		Identity: identity,
		Status:   handlers.OptionalString(r, "status"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.respondError(w, "GET /service-requests", 0, identity, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Nearby GET /api/v1/service-requests/nearby?latitude=&longitude=&radiusKm=&serviceTypeId=&limit=
func (h *Handler) Nearby(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	req, err := parseNearby(r)
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	resp, err := h.service.Nearby(r.Context(), identity, req)
	if err != nil {
		h.respondError(w, "GET /service-requests/nearby", 0, identity, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func parseNearby(r *http.Request) (*models.NearbyRequest, error) {
	lat, err := handlers.QueryFloat(r, "latitude")
	if err != nil {
		return nil, err
	}
	lon, err := handlers.QueryFloat(r, "longitude")
	if err != nil {
		return nil, err
	}
	if lat == nil || lon == nil {
		return nil, errors.New(msgLatitudeLongitudeReqd)
	}

	req := &models.NearbyRequest{Latitude: *lat, Longitude: *lon}
	if req.RadiusKm, err = handlers.QueryFloat(r, "radiusKm"); err != nil {
		return nil, err
	}
	if req.ServiceTypeID, err = handlers.QueryInt64(r, "serviceTypeId"); err != nil {
		return nil, err
	}
	if req.Limit, _, err = handlers.Pagination(r); err != nil {
		return nil, err
	}
	return req, nil
}

// Accept PATCH /api/v1/service-requests/{requestId}/accept, тело {"otpCode": "123456"}
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := h.identityAndID(w, r)
	if !ok {
		return
	}

	var req models.AcceptRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /service-requests/{id}/accept - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Accept(r.Context(), id, identity, &req)
	if err != nil {
		h.respondError(w, "PATCH /service-requests/{id}/accept", id, identity, err)
		return
	}

	h.logger.Info("PATCH /service-requests/{id}/accept - Accepted: request_id=%d, user_id=%d", id, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Start PATCH /api/v1/service-requests/{requestId}/start
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "start", h.service.Start)
}

// Cancel PATCH /api/v1/service-requests/{requestId}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "cancel", h.service.Cancel)
}

// Reject PATCH /api/v1/service-requests/{requestId}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "reject", h.service.Reject)
}

// Complete PATCH /api/v1/service-requests/{requestId}/complete, тело {"totalCost": 250.0} необязательно
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := h.identityAndID(w, r)
	if !ok {
		return
	}

	var req models.CompleteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /service-requests/{id}/complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Complete(r.Context(), id, identity, &req)
	if err != nil {
		h.respondError(w, "PATCH /service-requests/{id}/complete", id, identity, err)
		return
	}

	h.logger.Info("PATCH /service-requests/{id}/complete - Completed: request_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

type action func(ctx context.Context, id int64, identity *domain.Identity) (*models.ServiceRequestResponse, error)

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, name string, fn action) {
	identity, id, ok := h.identityAndID(w, r)
	if !ok {
		return
	}

	resp, err := fn(r.Context(), id, identity)
	if err != nil {
		h.respondError(w, "PATCH /service-requests/{id}/"+name, id, identity, err)
		return
	}

	h.logger.Info("PATCH /service-requests/{id}/%s - Status changed: request_id=%d, status=%s, user_id=%d",
		name, id, resp.Status, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (*domain.Identity, bool) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
	}
	return identity, ok
}

func (h *Handler) identityAndID(w http.ResponseWriter, r *http.Request) (*domain.Identity, int64, bool) {
	id, err := handlers.PathID(r, "requestId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return nil, 0, false
	}
	identity, ok := h.identity(w, r)
	return identity, id, ok
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, identity *domain.Identity, err error) {
	switch {
	case errors.Is(err, servicerequests.ErrRequestNotFound):
		h.logger.Warn("%s - Not found: request_id=%d", route, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, servicerequests.ErrServiceTypeNotFound):
		handlers.RespondNotFound(w, msgServiceTypeNotFound)

	case errors.Is(err, servicerequests.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: request_id=%d, user_id=%d", route, id, identity.UserID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, servicerequests.ErrProviderProfileRequired):
		handlers.RespondForbidden(w, msgProviderProfile)

	case errors.Is(err, servicerequests.ErrOTPMismatch):
		h.logger.Warn("%s - OTP mismatch: request_id=%d, user_id=%d", route, id, identity.UserID)
		handlers.RespondBadRequest(w, msgOTPMismatch)

	case errors.Is(err, servicerequests.ErrInvalidStatus):
		handlers.RespondBadRequest(w, handlers.TransitionMessage(err, msgInvalidStatus))

	case errors.Is(err, servicerequests.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: request_id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
