package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is the root of every rejected status change
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidTimeRange is returned when start is not before end
	ErrInvalidTimeRange = errors.New("start time must be before end time")

	// ErrStartInPast is returned when a booking starts before now
	ErrStartInPast = errors.New("start time must not be in the past")

	// ErrOTPMismatch is returned when the supplied OTP differs from the stored one
	ErrOTPMismatch = errors.New("otp code does not match")

	// ErrInvalidRating is returned when a rating is outside [1,5]
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrInvalidLocation is returned for out of range coordinates
	ErrInvalidLocation = errors.New("invalid coordinates")
)

// TransitionError names the entity, the attempted action and the current status
type TransitionError struct {
	Entity  string
	Action  string
	Current string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s %s: current status is %s", e.Action, e.Entity, e.Current)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
