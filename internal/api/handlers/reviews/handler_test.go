package reviews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers"
	"github.com/Spheriverse04/ServeMee-sub000/internal/api/middleware"
	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	reviewService "github.com/Spheriverse04/ServeMee-sub000/internal/service/reviews"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/reviews/models"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/logger"
)

type fakeReviews struct {
	err            error
	listProvider   int64
	limit, offset  uint64
	helpfulCounter int
}

func (f *fakeReviews) Create(_ context.Context, identity *domain.Identity, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReviewResponse{ID: 1, ServiceRequestID: req.ServiceRequestID, ConsumerID: identity.UserID, Rating: req.Rating, IsVerified: true}, nil
}

func (f *fakeReviews) GetByID(_ context.Context, id int64) (*models.ReviewResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReviewResponse{ID: id}, nil
}

func (f *fakeReviews) ListByProvider(_ context.Context, providerID int64, limit, offset uint64) (*models.ReviewListResponse, error) {
	f.listProvider, f.limit, f.offset = providerID, limit, offset
	return &models.ReviewListResponse{Reviews: []models.ReviewResponse{}}, f.err
}

func (f *fakeReviews) Update(_ context.Context, id int64, _ *domain.Identity, _ *models.UpdateReviewRequest) (*models.ReviewResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReviewResponse{ID: id}, nil
}

func (f *fakeReviews) Delete(_ context.Context, _ int64, _ *domain.Identity) error {
	return f.err
}

func (f *fakeReviews) MarkHelpful(_ context.Context, id int64, _ *domain.Identity) (*models.HelpfulResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.helpfulCounter++
	return &models.HelpfulResponse{ID: id, HelpfulCount: f.helpfulCounter}, nil
}

var consumer = &domain.Identity{UserID: 11, Role: domain.RoleConsumer}

func TestCreate(t *testing.T) {
	h := NewHandler(&fakeReviews{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ratings-reviews", strings.NewReader(`{"serviceRequestId":5,"rating":4,"reviewText":"ok"}`))
	req = req.WithContext(middleware.WithIdentity(req.Context(), consumer))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body models.ReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(5), body.ServiceRequestID)
	assert.Equal(t, int64(11), body.ConsumerID)
	assert.True(t, body.IsVerified)
}

func TestCreate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"duplicate", reviewService.ErrReviewAlreadyExists, http.StatusConflict},
		{"not completed", fmt.Errorf("%w: current status is ACCEPTED", reviewService.ErrRequestNotCompleted), http.StatusBadRequest},
		{"not owner", reviewService.ErrAccessDenied, http.StatusForbidden},
		{"no request", reviewService.ErrRequestNotFound, http.StatusNotFound},
		{"rating", fmt.Errorf("%w: rating must be between 1 and 5", reviewService.ErrInvalidInput), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeReviews{err: tt.err}, logger.NewNop())
			req := httptest.NewRequest(http.MethodPost, "/api/v1/ratings-reviews", strings.NewReader(`{"serviceRequestId":5,"rating":4}`))
			req = req.WithContext(middleware.WithIdentity(req.Context(), consumer))
			rec := httptest.NewRecorder()
			h.Create(rec, req)

			require.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestList_RequiresProvider(t *testing.T) {
	svc := &fakeReviews{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ratings-reviews", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ratings-reviews?providerId=7&limit=5&offset=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.listProvider)
	assert.Equal(t, uint64(5), svc.limit)
	assert.Equal(t, uint64(10), svc.offset)
}

func markHelpful(h *Handler, identity *domain.Identity) *httptest.ResponseRecorder {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/api/v1/ratings-reviews/3/helpful", nil), map[string]string{"id": "3"})
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	rec := httptest.NewRecorder()
	h.MarkHelpful(rec, req)
	return rec
}

func TestMarkHelpful_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"author", reviewService.ErrOwnReview, http.StatusForbidden, msgOwnReview},
		{"second vote", reviewService.ErrAlreadyVoted, http.StatusConflict, msgAlreadyVoted},
		{"not found", reviewService.ErrReviewNotFound, http.StatusNotFound, msgReviewNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := markHelpful(NewHandler(&fakeReviews{err: tt.err}, logger.NewNop()), consumer)

			require.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Message)
		})
	}

	assert.Equal(t, http.StatusUnauthorized, markHelpful(NewHandler(&fakeReviews{}, logger.NewNop()), nil).Code)
}

func TestMarkHelpfulAndDelete(t *testing.T) {
	h := NewHandler(&fakeReviews{}, logger.NewNop())
	vars := map[string]string{"id": "3"}

	for i := 1; i <= 2; i++ {
		rec := markHelpful(h, &domain.Identity{UserID: int64(20 + i), Role: domain.RoleConsumer})
		require.Equal(t, http.StatusOK, rec.Code)
		var body models.HelpfulResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, i, body.HelpfulCount)
	}

	req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/api/v1/ratings-reviews/3", nil), vars)
	req = req.WithContext(middleware.WithIdentity(req.Context(), consumer))
	rec := httptest.NewRecorder()
	h.Delete(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
