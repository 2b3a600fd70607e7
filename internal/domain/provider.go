package domain

import "time"

// ServiceProvider is the provider profile of a user with role service_provider
// AverageRating and TotalRatings are derived from verified reviews
type ServiceProvider struct {
	ID            int64
	UserID        int64
	CompanyName   *string
	Description   *string
	AverageRating float64
	TotalRatings  int
	IsVerified    bool
	LocalityIDs   []int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
