package domain

// Business validation constants
const (
	OTPLength = 6

	MinRating = 1
	MaxRating = 5

	MaxNotesLength      = 1000
	MaxReviewTextLength = 2000
	MaxAddressLength    = 500
	MaxNameLength       = 200

	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt input limit
)

// Nearby search limits, kilometres
const (
	DefaultSearchRadiusKm = 10.0
	MaxSearchRadiusKm     = 50.0
)

// Pagination defaults
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// NormalizeLimit clamps a requested page size
func NormalizeLimit(limit uint64) uint64 {
	if limit == 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
