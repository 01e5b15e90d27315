package domain

import (
	"time"

	"github.com/google/uuid"
)

// BlockedPeriod represents an owner-defined interval during which
// a resource cannot be booked, independent of reservations.
type BlockedPeriod struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	Period     Interval
	Reason     string

	CreatedAt time.Time
}
