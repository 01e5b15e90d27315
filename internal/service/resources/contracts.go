package resources

import (
	"context"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
	"github.com/rodrigocvmd/pgra-backend/internal/integrations/identityservice"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	List(ctx context.Context) ([]*domain.Resource, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Resource, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.ResourceUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReservationRepository интерфейс репозитория бронирований
// (используется защитой от удаления ресурса с активными бронированиями)
type ReservationRepository interface {
	CountActiveByResource(ctx context.Context, resourceID uuid.UUID) (int64, error)
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
