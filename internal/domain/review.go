package domain

import (
	"math"
	"time"
)

// RatingReview is a consumer's feedback on a completed service request
type RatingReview struct {
	ID                int64
	ServiceRequestID  int64
	ConsumerID        int64
	ServiceProviderID int64
	Rating            int
	ReviewText        *string
	IsVerified        bool
	HelpfulCount      int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ValidateRating checks the rating is within [MinRating, MaxRating]
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// RatingSummary is the aggregate written back to the provider
type RatingSummary struct {
	AverageRating float64
	TotalRatings  int
}

// AggregateRatings computes the mean rounded to one decimal and the count
func AggregateRatings(ratings []int) RatingSummary {
	if len(ratings) == 0 {
		return RatingSummary{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return RatingSummary{
		AverageRating: math.Round(mean*10) / 10,
		TotalRatings:  len(ratings),
	}
}
