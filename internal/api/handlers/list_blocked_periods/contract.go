package list_blocked_periods

import (
	"context"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/service/availability/models"
)

type AvailabilityService interface {
	ListBlockedPeriods(ctx context.Context, resourceID uuid.UUID) (*models.BlockedPeriodListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
