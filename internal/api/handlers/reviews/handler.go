package reviews

import (
	"errors"
	"net/http"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers"
	"github.com/Spheriverse04/ServeMee-sub000/internal/api/middleware"
	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	reviewService "github.com/Spheriverse04/ServeMee-sub000/internal/service/reviews"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/reviews/models"
)

const (
	msgInvalidReviewID    = "invalid review id"
	msgInvalidRequestBody = "invalid request body"
	msgProviderIDRequired = "providerId query parameter is required"
	msgUnauthorized       = "authentication required"
	msgReviewNotFound     = "review not found"
	msgRequestNotFound    = "service request not found"
	msgProviderNotFound   = "service provider not found"
	msgForbidden          = "access denied"
	msgAlreadyReviewed    = "service request has already been reviewed"
	msgOwnReview          = "cannot mark your own review as helpful"
	msgAlreadyVoted       = "review already marked as helpful"
)

// Handler отзывы /api/v1/ratings-reviews
type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/ratings-reviews (заказчик, по завершенной заявке)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /ratings-reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.Create(r.Context(), identity, &req)
	if err != nil {
		h.respondError(w, "POST /ratings-reviews", identity, err)
		return
	}

	h.logger.Info("POST /ratings-reviews - Created review_id=%d for provider_id=%d", created.ID, created.ServiceProviderID)
	handlers.RespondJSON(w, http.StatusCreated, created)
}

// List GET /api/v1/ratings-reviews?providerId=&limit=&offset=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.QueryInt64(r, "providerId")
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	if providerID == nil {
		handlers.RespondBadRequest(w, msgProviderIDRequired)
		return
	}
	limit, offset, err := handlers.Pagination(r)
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	list, err := h.service.ListByProvider(r.Context(), *providerID, limit, offset)
	if err != nil {
		h.respondError(w, "GET /ratings-reviews", nil, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, list)
}

// Get GET /api/v1/ratings-reviews/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	resp, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /ratings-reviews/{id}", nil, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Update PATCH /api/v1/ratings-reviews/{id} (автор)
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.UpdateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /ratings-reviews/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Update(r.Context(), id, identity, &req)
	if err != nil {
		h.respondError(w, "PATCH /ratings-reviews/{id}", identity, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Delete DELETE /api/v1/ratings-reviews/{id} (автор или администратор)
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), id, identity); err != nil {
		h.respondError(w, "DELETE /ratings-reviews/{id}", identity, err)
		return
	}

	h.logger.Info("DELETE /ratings-reviews/{id} - Deleted review_id=%d by user_id=%d", id, identity.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// MarkHelpful POST /api/v1/ratings-reviews/{id}/helpful
func (h *Handler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	resp, err := h.service.MarkHelpful(r.Context(), id, identity)
	if err != nil {
		h.respondError(w, "POST /ratings-reviews/{id}/helpful", identity, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, identity *domain.Identity, err error) {
	switch {
	case errors.Is(err, reviewService.ErrReviewNotFound):
		handlers.RespondNotFound(w, msgReviewNotFound)
	case errors.Is(err, reviewService.ErrRequestNotFound):
		handlers.RespondNotFound(w, msgRequestNotFound)
	case errors.Is(err, reviewService.ErrProviderNotFound):
		handlers.RespondNotFound(w, msgProviderNotFound)
	case errors.Is(err, reviewService.ErrAccessDenied):
		var userID int64
		if identity != nil {
			userID = identity.UserID
		}
		h.logger.Warn("%s - Access denied: user_id=%d", route, userID)
		handlers.RespondForbidden(w, msgForbidden)
	case errors.Is(err, reviewService.ErrOwnReview):
		handlers.RespondForbidden(w, msgOwnReview)
	case errors.Is(err, reviewService.ErrReviewAlreadyExists):
		handlers.RespondConflict(w, msgAlreadyReviewed)
	case errors.Is(err, reviewService.ErrAlreadyVoted):
		handlers.RespondConflict(w, msgAlreadyVoted)
	case errors.Is(err, reviewService.ErrRequestNotCompleted),
		errors.Is(err, reviewService.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())
	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
