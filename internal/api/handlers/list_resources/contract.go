package list_resources

import (
	"context"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/service/resources/models"
)

type ResourceService interface {
	List(ctx context.Context) (*models.ResourceListResponse, error)
	GetMyResources(ctx context.Context, ownerID uuid.UUID) (*models.ResourceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
