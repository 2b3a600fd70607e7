package list_bookings

import (
	"errors"
	"net/http"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers"
	"github.com/Spheriverse04/ServeMee-sub000/internal/api/middleware"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/bookings"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/bookings/models"
)

const (
	msgUnauthorized = "authentication required"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?status=&serviceId=&consumerId=&serviceProviderId=&limit=&offset=
// consumerId и serviceProviderId учитываются только для администратора
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	req.Identity = identity

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /bookings - Failed to list bookings: user_id=%d, error=%v", identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

func parseQuery(r *http.Request) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{Status: handlers.OptionalString(r, "status")}

	var err error
	if req.ServiceID, err = handlers.QueryInt64(r, "serviceId"); err != nil {
		return nil, err
	}
	if req.ConsumerID, err = handlers.QueryInt64(r, "consumerId"); err != nil {
		return nil, err
	}
	if req.ServiceProviderID, err = handlers.QueryInt64(r, "serviceProviderId"); err != nil {
		return nil, err
	}
	if req.Limit, req.Offset, err = handlers.Pagination(r); err != nil {
		return nil, err
	}
	return req, nil
}
