package delete_reservation

import (
	"context"

	"github.com/google/uuid"
)

type ReservationService interface {
	Delete(ctx context.Context, reservationID uuid.UUID, callerID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
