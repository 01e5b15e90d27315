package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusFinalized ReservationStatus = "finalized"
)

// Reservation represents a time-bounded claim on a resource by a user
type Reservation struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	UserID     uuid.UUID // бронирующий пользователь
	Period     Interval
	TotalPrice float64
	Status     ReservationStatus

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// transitions таблица допустимых переходов статусов.
// Единственная точка, где описана машина состояний бронирования.
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusFinalized},
	StatusCancelled: {},
	StatusFinalized: {},
}

// CanTransition reports whether moving from one status to another is allowed
func CanTransition(from, to ReservationStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsActive returns true if the reservation still occupies its interval
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// IsTerminal returns true if no further transitions are allowed
func (r *Reservation) IsTerminal() bool {
	return len(transitions[r.Status]) == 0
}

// CanBeConfirmed returns true if the reservation can be confirmed
func (r *Reservation) CanBeConfirmed() bool {
	return CanTransition(r.Status, StatusConfirmed)
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return CanTransition(r.Status, StatusCancelled)
}

// CanBeUpdated returns true if the interval can still be rescheduled
func (r *Reservation) CanBeUpdated() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// ActiveStatuses список статусов, занимающих интервал.
// Используется при проверке пересечений.
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusFinalized,
}

// ValidStatuses список всех допустимых статусов
var ValidStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusFinalized,
}

// ParseReservationStatus валидирует строковое представление статуса
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	status := ReservationStatus(s)
	for _, valid := range ValidStatuses {
		if status == valid {
			return status, true
		}
	}
	return "", false
}
