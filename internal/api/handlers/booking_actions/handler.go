package booking_actions

import (
	"context"
	"errors"
	"net/http"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers"
	"github.com/Spheriverse04/ServeMee-sub000/internal/api/middleware"
	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/bookings"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "invalid booking id"
	msgUnauthorized     = "authentication required"
	msgNotFound         = "booking not found"
	msgForbidden        = "access denied"
	msgInvalidStatus    = "operation is not allowed in the current booking status"
)

type action func(ctx context.Context, id int64, identity *domain.Identity) (*models.BookingResponse, error)

// Handler смена статуса бронирования: PATCH /api/v1/bookings/{bookingId}/{action}
type Handler struct {
	name   string
	action action
	logger Logger
}

// NewConfirmHandler PATCH /bookings/{bookingId}/confirm (провайдер)
func NewConfirmHandler(service BookingService, logger Logger) *Handler {
	return &Handler{name: "confirm", action: service.Confirm, logger: logger}
}

// NewRejectHandler PATCH /bookings/{bookingId}/reject (провайдер)
func NewRejectHandler(service BookingService, logger Logger) *Handler {
	return &Handler{name: "reject", action: service.Reject, logger: logger}
}

// NewCompleteHandler PATCH /bookings/{bookingId}/complete (провайдер)
func NewCompleteHandler(service BookingService, logger Logger) *Handler {
	return &Handler{name: "complete", action: service.Complete, logger: logger}
}

// NewCancelHandler PATCH /bookings/{bookingId}/cancel (заказчик или провайдер)
func NewCancelHandler(service BookingService, logger Logger) *Handler {
	return &Handler{name: "cancel", action: service.Cancel, logger: logger}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/%s - Invalid booking ID: %v", h.name, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	booking, err := h.action(r.Context(), bookingID, identity)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/%s - Booking not found: booking_id=%d", h.name, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/%s - Access denied: booking_id=%d, user_id=%d",
				h.name, bookingID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PATCH /bookings/{id}/%s - Invalid status: booking_id=%d: %v", h.name, bookingID, err)
			handlers.RespondBadRequest(w, handlers.TransitionMessage(err, msgInvalidStatus))

		case errors.Is(err, bookings.ErrBookingConflict):
			handlers.RespondConflict(w, err.Error())

		default:
			h.logger.Error("PATCH /bookings/{id}/%s - Failed: booking_id=%d, error=%v", h.name, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/%s - Booking status changed: booking_id=%d, status=%s, user_id=%d",
		h.name, bookingID, booking.Status, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
