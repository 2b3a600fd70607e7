package domain

import "time"

// DateFormat is the calendar date layout accepted by availability queries
const DateFormat = "2006-01-02"

// TimeSlot is a candidate booking interval [Start,End) of a service
type TimeSlot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

// DurationMinutes returns the slot length in minutes
func (s TimeSlot) DurationMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
