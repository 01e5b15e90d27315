package delete_resource

import (
	"context"

	"github.com/google/uuid"
)

type ResourceService interface {
	Delete(ctx context.Context, resourceID uuid.UUID, callerID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
