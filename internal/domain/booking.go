package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingRejected  BookingStatus = "REJECTED"
)

// bookingTransitions lists the allowed next statuses for each status.
// Terminal statuses have no entry.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingRejected, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

// ActiveBookingStatuses are the statuses that occupy a time slot
var ActiveBookingStatuses = []BookingStatus{
	BookingPending,
	BookingConfirmed,
}

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted, BookingRejected:
		return true
	default:
		return false
	}
}

// Booking represents a consumer's booking of a provider's service
type Booking struct {
	ID                int64
	StartTime         time.Time
	EndTime           time.Time
	AgreedPrice       float64
	Status            BookingStatus
	Notes             *string
	ConsumerID        int64
	ServiceID         int64
	ServiceProviderID int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsActive returns true if the booking counts toward overlap checks
func (b *Booking) IsActive() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

// IsTerminal returns true if no further transitions are possible
func (b *Booking) IsTerminal() bool {
	return len(bookingTransitions[b.Status]) == 0
}

// CanTransitionTo returns true if moving to next is allowed from the current status
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the booking to next or returns a TransitionError naming the current status
func (b *Booking) TransitionTo(next BookingStatus, action string) error {
	if !b.CanTransitionTo(next) {
		return &TransitionError{Entity: "booking", Action: action, Current: string(b.Status)}
	}
	b.Status = next
	return nil
}

// Overlaps reports whether [start,end) intersects the booking's [StartTime,EndTime)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndTime) && end.After(b.StartTime)
}

// ValidateBookingTime checks start < end and start >= now
func ValidateBookingTime(start, end, now time.Time) error {
	if !start.Before(end) {
		return ErrInvalidTimeRange
	}
	if start.Before(now) {
		return ErrStartInPast
	}
	return nil
}

// FindOverlap returns the first active booking that overlaps [start,end),
// skipping the booking with excludeID (0 to skip nothing)
func FindOverlap(start, end time.Time, existing []*Booking, excludeID int64) *Booking {
	for _, b := range existing {
		if b.ID == excludeID && excludeID != 0 {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if b.Overlaps(start, end) {
			return b
		}
	}
	return nil
}

// BookingFilter selects bookings for listing
type BookingFilter struct {
	ConsumerID        *int64
	ServiceProviderID *int64
	ServiceID         *int64
	Status            *BookingStatus
	Limit             uint64
	Offset            uint64
}

// OverlapQuery selects active bookings of a service intersecting [Start,End)
type OverlapQuery struct {
	ServiceID int64
	Start     time.Time
	End       time.Time
	ExcludeID int64
}
