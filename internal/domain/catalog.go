package domain

import "time"

// ServiceCategory groups service types (e.g. "Plumbing")
type ServiceCategory struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ServiceType is a kind of work inside a category (e.g. "Leak repair")
type ServiceType struct {
	ID          int64
	CategoryID  int64
	Name        string
	Description *string
	BasePrice   *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Service is a sellable unit listed by a service provider
type Service struct {
	ID                int64
	ServiceProviderID int64
	ServiceTypeID     int64
	Name              string
	Description       *string
	Price             float64
	DurationMinutes   *int
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
