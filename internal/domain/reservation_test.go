package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusFinalized, false},
		{StatusPending, StatusPending, false},

		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusFinalized, true},
		{StatusConfirmed, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},

		// Терминальные статусы: переходов нет
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusCancelled, StatusFinalized, false},

		{StatusFinalized, StatusPending, false},
		{StatusFinalized, StatusConfirmed, false},
		{StatusFinalized, StatusCancelled, false},
		{StatusFinalized, StatusFinalized, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestReservationStatusPredicates(t *testing.T) {
	t.Run("active statuses", func(t *testing.T) {
		assert.True(t, (&Reservation{Status: StatusPending}).IsActive())
		assert.True(t, (&Reservation{Status: StatusConfirmed}).IsActive())
		assert.True(t, (&Reservation{Status: StatusFinalized}).IsActive())
		assert.False(t, (&Reservation{Status: StatusCancelled}).IsActive())
	})

	t.Run("terminal statuses", func(t *testing.T) {
		assert.False(t, (&Reservation{Status: StatusPending}).IsTerminal())
		assert.False(t, (&Reservation{Status: StatusConfirmed}).IsTerminal())
		assert.True(t, (&Reservation{Status: StatusCancelled}).IsTerminal())
		assert.True(t, (&Reservation{Status: StatusFinalized}).IsTerminal())
	})

	t.Run("can be confirmed", func(t *testing.T) {
		assert.True(t, (&Reservation{Status: StatusPending}).CanBeConfirmed())
		assert.False(t, (&Reservation{Status: StatusConfirmed}).CanBeConfirmed())
		assert.False(t, (&Reservation{Status: StatusCancelled}).CanBeConfirmed())
		assert.False(t, (&Reservation{Status: StatusFinalized}).CanBeConfirmed())
	})

	t.Run("can be cancelled", func(t *testing.T) {
		assert.True(t, (&Reservation{Status: StatusPending}).CanBeCancelled())
		assert.True(t, (&Reservation{Status: StatusConfirmed}).CanBeCancelled())
		assert.False(t, (&Reservation{Status: StatusCancelled}).CanBeCancelled())
		assert.False(t, (&Reservation{Status: StatusFinalized}).CanBeCancelled())
	})

	t.Run("can be updated", func(t *testing.T) {
		assert.True(t, (&Reservation{Status: StatusPending}).CanBeUpdated())
		assert.True(t, (&Reservation{Status: StatusConfirmed}).CanBeUpdated())
		assert.False(t, (&Reservation{Status: StatusCancelled}).CanBeUpdated())
		assert.False(t, (&Reservation{Status: StatusFinalized}).CanBeUpdated())
	})
}

func TestParseReservationStatus(t *testing.T) {
	for _, status := range ValidStatuses {
		parsed, ok := ParseReservationStatus(string(status))
		assert.True(t, ok)
		assert.Equal(t, status, parsed)
	}

	_, ok := ParseReservationStatus("unknown")
	assert.False(t, ok)

	_, ok = ParseReservationStatus("")
	assert.False(t, ok)
}
