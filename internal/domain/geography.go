package domain

import "time"

// Country is the root of the geography hierarchy
type Country struct {
	ID        int64
	Name      string
	Code      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// State belongs to a Country, its name is unique within the country
type State struct {
	ID        int64
	CountryID int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// District belongs to a State, its name is unique within the state
type District struct {
	ID        int64
	StateID   int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Locality belongs to a District, its name is unique within the district
type Locality struct {
	ID         int64
	DistrictID int64
	Name       string
	Pincode    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GeoPoint is a WGS84 coordinate
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// IsValid checks coordinate ranges
func (p GeoPoint) IsValid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}
