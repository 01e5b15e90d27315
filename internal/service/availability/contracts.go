package availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
	"github.com/rodrigocvmd/pgra-backend/internal/integrations/identityservice"
)

// BlockedPeriodRepository интерфейс репозитория заблокированных периодов
type BlockedPeriodRepository interface {
	Create(ctx context.Context, bp *domain.BlockedPeriod) (*domain.BlockedPeriod, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BlockedPeriod, error)
	ListByResource(ctx context.Context, resourceID uuid.UUID) ([]*domain.BlockedPeriod, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
}

// IdentityClient интерфейс клиента identity-сервиса
type IdentityClient interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*identityservice.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
