package get_resource

import (
	"context"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/service/resources/models"
)

type ResourceService interface {
	GetByID(ctx context.Context, resourceID uuid.UUID) (*models.ResourceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
