package domain

import (
	"errors"
	"time"
)

// ErrInvalidInterval возвращается, когда конец интервала не позже его начала
var ErrInvalidInterval = errors.New("domain: interval end must be after start")

// Interval represents a half-open time interval [Start, End)
// Start is inclusive, End is exclusive, so a reservation ending at 12:00
// and another starting at 12:00 do not overlap.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval creates a validated interval
func NewInterval(start, end time.Time) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// Validate checks the Start < End invariant
func (i Interval) Validate() error {
	if i.Start.IsZero() || i.End.IsZero() {
		return ErrInvalidInterval
	}
	if !i.End.After(i.Start) {
		return ErrInvalidInterval
	}
	return nil
}

// Overlaps reports whether two half-open intervals intersect.
// Touching endpoints (a.End == b.Start) are not an overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Duration returns the interval length
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// IsEntirelyBefore reports whether the interval ends at or before the given moment
func (i Interval) IsEntirelyBefore(t time.Time) bool {
	return !i.End.After(t)
}
