package remove_blocked_period

import (
	"context"

	"github.com/google/uuid"
)

type AvailabilityService interface {
	RemoveBlockedPeriod(ctx context.Context, blockedPeriodID uuid.UUID, callerID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
