package availability

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
	blockedRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/blockedperiod"
	resourceRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/resource"
	identityClient "github.com/rodrigocvmd/pgra-backend/internal/integrations/identityservice"
	"github.com/rodrigocvmd/pgra-backend/internal/service/availability/models"
)

// Фейки зависимостей

type fakeBlockedPeriodRepo struct {
	periods map[uuid.UUID]*domain.BlockedPeriod
}

func (f *fakeBlockedPeriodRepo) Create(_ context.Context, bp *domain.BlockedPeriod) (*domain.BlockedPeriod, error) {
	stored := *bp
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	f.periods[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeBlockedPeriodRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.BlockedPeriod, error) {
	bp, ok := f.periods[id]
	if !ok {
		return nil, blockedRepo.ErrBlockedPeriodNotFound
	}
	return bp, nil
}

func (f *fakeBlockedPeriodRepo) ListByResource(_ context.Context, resourceID uuid.UUID) ([]*domain.BlockedPeriod, error) {
	var out []*domain.BlockedPeriod
	for _, bp := range f.periods {
		if bp.ResourceID == resourceID {
			out = append(out, bp)
		}
	}
	return out, nil
}

func (f *fakeBlockedPeriodRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.periods[id]; !ok {
		return blockedRepo.ErrBlockedPeriodNotFound
	}
	delete(f.periods, id)
	return nil
}

type fakeResourceRepo struct {
	resources map[uuid.UUID]*domain.Resource
}

func (f *fakeResourceRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Resource, error) {
	res, ok := f.resources[id]
	if !ok {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return res, nil
}

type fakeIdentityClient struct {
	users map[uuid.UUID]*identityClient.User
}

func (f *fakeIdentityClient) GetUser(_ context.Context, userID uuid.UUID) (*identityClient.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, identityClient.ErrUserNotFound
	}
	return user, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ts(hour int) time.Time {
	return time.Date(2026, 7, 1, hour, 0, 0, 0, time.UTC)
}

type env struct {
	svc        *Service
	blocked    *fakeBlockedPeriodRepo
	resourceID uuid.UUID
	ownerID    uuid.UUID
	adminID    uuid.UUID
	userID     uuid.UUID
}

func newEnv() *env {
	resourceID := uuid.New()
	ownerID := uuid.New()
	adminID := uuid.New()
	userID := uuid.New()

	blocked := &fakeBlockedPeriodRepo{periods: map[uuid.UUID]*domain.BlockedPeriod{}}
	resources := &fakeResourceRepo{resources: map[uuid.UUID]*domain.Resource{
		resourceID: {ID: resourceID, OwnerID: ownerID, Name: "Переговорная", PricePerHour: 100},
	}}
	identity := &fakeIdentityClient{users: map[uuid.UUID]*identityClient.User{
		ownerID: {ID: ownerID, Name: "Owner", Role: "OWNER"},
		adminID: {ID: adminID, Name: "Admin", Role: "ADMIN"},
		userID:  {ID: userID, Name: "User", Role: "USER"},
	}}

	return &env{
		svc:        NewService(blocked, resources, identity, nopLogger{}),
		blocked:    blocked,
		resourceID: resourceID,
		ownerID:    ownerID,
		adminID:    adminID,
		userID:     userID,
	}
}

func TestAddBlockedPeriod(t *testing.T) {
	t.Run("owner blocks a period", func(t *testing.T) {
		e := newEnv()

		resp, err := e.svc.AddBlockedPeriod(context.Background(), &models.AddBlockedPeriodRequest{
			ResourceID:   e.resourceID,
			CallerID:     e.ownerID,
			BlockedStart: ts(10),
			BlockedEnd:   ts(12),
			Reason:       "техобслуживание",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.ID)
		assert.Equal(t, "техобслуживание", resp.Reason)
		assert.Len(t, e.blocked.periods, 1)
	})

	t.Run("admin blocks a period", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.AddBlockedPeriod(context.Background(), &models.AddBlockedPeriodRequest{
			ResourceID:   e.resourceID,
			CallerID:     e.adminID,
			BlockedStart: ts(10),
			BlockedEnd:   ts(12),
			Reason:       "ремонт",
		})
		assert.NoError(t, err)
	})

	t.Run("regular user denied", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.AddBlockedPeriod(context.Background(), &models.AddBlockedPeriodRequest{
			ResourceID:   e.resourceID,
			CallerID:     e.userID,
			BlockedStart: ts(10),
			BlockedEnd:   ts(12),
			Reason:       "попытка",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, e.blocked.periods)
	})

	t.Run("invalid interval", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.AddBlockedPeriod(context.Background(), &models.AddBlockedPeriodRequest{
			ResourceID:   e.resourceID,
			CallerID:     e.ownerID,
			BlockedStart: ts(12),
			BlockedEnd:   ts(10),
			Reason:       "техобслуживание",
		})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("empty reason", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.AddBlockedPeriod(context.Background(), &models.AddBlockedPeriodRequest{
			ResourceID:   e.resourceID,
			CallerID:     e.ownerID,
			BlockedStart: ts(10),
			BlockedEnd:   ts(12),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("reason too long", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.AddBlockedPeriod(context.Background(), &models.AddBlockedPeriodRequest{
			ResourceID:   e.resourceID,
			CallerID:     e.ownerID,
			BlockedStart: ts(10),
			BlockedEnd:   ts(12),
			Reason:       strings.Repeat("x", domain.MaxReasonLength+1),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown resource", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.AddBlockedPeriod(context.Background(), &models.AddBlockedPeriodRequest{
			ResourceID:   uuid.New(),
			CallerID:     e.ownerID,
			BlockedStart: ts(10),
			BlockedEnd:   ts(12),
			Reason:       "техобслуживание",
		})
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})
}

func TestRemoveBlockedPeriod(t *testing.T) {
	addPeriod := func(t *testing.T, e *env) uuid.UUID {
		t.Helper()
		resp, err := e.svc.AddBlockedPeriod(context.Background(), &models.AddBlockedPeriodRequest{
			ResourceID:   e.resourceID,
			CallerID:     e.ownerID,
			BlockedStart: ts(10),
			BlockedEnd:   ts(12),
			Reason:       "техобслуживание",
		})
		require.NoError(t, err)
		return resp.ID
	}

	t.Run("owner removes period", func(t *testing.T) {
		e := newEnv()
		id := addPeriod(t, e)

		err := e.svc.RemoveBlockedPeriod(context.Background(), id, e.ownerID)
		require.NoError(t, err)
		assert.Empty(t, e.blocked.periods)
	})

	t.Run("regular user denied", func(t *testing.T) {
		e := newEnv()
		id := addPeriod(t, e)

		err := e.svc.RemoveBlockedPeriod(context.Background(), id, e.userID)
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Len(t, e.blocked.periods, 1)
	})

	t.Run("unknown period", func(t *testing.T) {
		e := newEnv()

		err := e.svc.RemoveBlockedPeriod(context.Background(), uuid.New(), e.ownerID)
		assert.ErrorIs(t, err, ErrBlockedPeriodNotFound)
	})
}

func TestListBlockedPeriods(t *testing.T) {
	t.Run("listing is public", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.AddBlockedPeriod(context.Background(), &models.AddBlockedPeriodRequest{
			ResourceID:   e.resourceID,
			CallerID:     e.ownerID,
			BlockedStart: ts(10),
			BlockedEnd:   ts(12),
			Reason:       "техобслуживание",
		})
		require.NoError(t, err)

		resp, err := e.svc.ListBlockedPeriods(context.Background(), e.resourceID)
		require.NoError(t, err)
		assert.Len(t, resp.BlockedPeriods, 1)
	})

	t.Run("unknown resource", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.ListBlockedPeriods(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})
}
