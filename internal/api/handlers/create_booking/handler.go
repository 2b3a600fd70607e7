package create_booking

import (
	"errors"
	"net/http"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers"
	"github.com/Spheriverse04/ServeMee-sub000/internal/api/middleware"
	createBooking "github.com/Spheriverse04/ServeMee-sub000/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body, times must be ISO 8601 (RFC3339 or YYYY-MM-DDTHH:MMZ)"
	msgUnauthorized       = "authentication required"
	msgServiceNotFound    = "service not found"
	msgServiceInactive    = "service is not available for booking"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(identity.UserID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrBookingConflict):
			h.logger.Warn("POST /bookings - Conflict: consumer_id=%d, service_id=%d: %v", identity.UserID, req.ServiceID, err)
			handlers.RespondConflict(w, err.Error())

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createBooking.ErrInvalidTimeRange),
			errors.Is(err, createBooking.ErrStartInPast),
			errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: consumer_id=%d: %v", identity.UserID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: consumer_id=%d, service_id=%d, error=%v",
				identity.UserID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, consumer_id=%d, service_id=%d",
		result.ID, identity.UserID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
