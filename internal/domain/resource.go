package domain

import (
	"time"

	"github.com/google/uuid"
)

// Resource represents a bookable asset (room, equipment, etc.) owned by a user
type Resource struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Name         string
	Description  *string
	ImageURL     *string
	PricePerHour float64 // неотрицательная почасовая ставка

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy reports whether the given user owns the resource
func (r *Resource) IsOwnedBy(userID uuid.UUID) bool {
	return r.OwnerID == userID
}

// ResourceUpdate describes a partial update of a resource.
// Nil fields are left untouched.
type ResourceUpdate struct {
	Name         *string
	Description  *string
	ImageURL     *string
	PricePerHour *float64
}

// IsEmpty returns true if the update changes nothing
func (u *ResourceUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.ImageURL == nil && u.PricePerHour == nil
}
