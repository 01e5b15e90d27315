package get_owner_reservations

import (
	"context"

	"github.com/rodrigocvmd/pgra-backend/internal/service/reservations/models"
)

type ReservationService interface {
	GetOwnerReservations(ctx context.Context, req *models.GetOwnerReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
