package confirm_reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/service/reservations/models"
)

type ReservationService interface {
	Confirm(ctx context.Context, reservationID uuid.UUID, callerID uuid.UUID) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
