package add_blocked_period

import (
	"context"

	"github.com/rodrigocvmd/pgra-backend/internal/service/availability/models"
)

type AvailabilityService interface {
	AddBlockedPeriod(ctx context.Context, req *models.AddBlockedPeriodRequest) (*models.BlockedPeriodResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
