package models

import (
	"time"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
)

// CreateReviewRequest отзыв на завершенную заявку
type CreateReviewRequest struct {
	ServiceRequestID int64   `json:"serviceRequestId"`
	Rating           int     `json:"rating"`
	ReviewText       *string `json:"reviewText,omitempty"`
}

// UpdateReviewRequest частичное обновление отзыва
type UpdateReviewRequest struct {
	Rating     *int    `json:"rating,omitempty"`
	ReviewText *string `json:"reviewText,omitempty"`
}

// ReviewResponse ответ с данными отзыва
type ReviewResponse struct {
	ID                int64     `json:"id"`
	ServiceRequestID  int64     `json:"serviceRequestId"`
	ConsumerID        int64     `json:"consumerId"`
	ServiceProviderID int64     `json:"serviceProviderId"`
	Rating            int       `json:"rating"`
	ReviewText        *string   `json:"reviewText,omitempty"`
	IsVerified        bool      `json:"isVerified"`
	HelpfulCount      int       `json:"helpfulCount"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ReviewListResponse список отзывов провайдера
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

// HelpfulResponse новое значение счетчика "полезно"
type HelpfulResponse struct {
	ID           int64 `json:"id"`
	HelpfulCount int   `json:"helpfulCount"`
}

func FromDomain(rv *domain.RatingReview) *ReviewResponse {
	return &ReviewResponse{
		ID:                rv.ID,
		ServiceRequestID:  rv.ServiceRequestID,
		ConsumerID:        rv.ConsumerID,
		ServiceProviderID: rv.ServiceProviderID,
		Rating:            rv.Rating,
		ReviewText:        rv.ReviewText,
		IsVerified:        rv.IsVerified,
		HelpfulCount:      rv.HelpfulCount,
		CreatedAt:         rv.CreatedAt,
		UpdatedAt:         rv.UpdatedAt,
	}
}

func FromDomainList(list []*domain.RatingReview) *ReviewListResponse {
	resp := &ReviewListResponse{Reviews: make([]ReviewResponse, 0, len(list))}
	for _, rv := range list {
		resp.Reviews = append(resp.Reviews, *FromDomain(rv))
	}
	return resp
}
