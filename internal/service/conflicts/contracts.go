package conflicts

import (
	"context"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	FindOverlapping(ctx context.Context, resourceID uuid.UUID, period domain.Interval, excludeID *uuid.UUID) ([]*domain.Reservation, error)
}

// BlockedPeriodRepository интерфейс репозитория заблокированных периодов
type BlockedPeriodRepository interface {
	FindOverlapping(ctx context.Context, resourceID uuid.UUID, period domain.Interval) ([]*domain.BlockedPeriod, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
