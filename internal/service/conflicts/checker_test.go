package conflicts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
	resourceRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/resource"
)

// Фейки репозиториев

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

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) FindOverlapping(_ context.Context, resourceID uuid.UUID, period domain.Interval, excludeID *uuid.UUID) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if r.ResourceID != resourceID || r.Status == domain.StatusCancelled {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if r.Period.Overlaps(period) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeBlockedPeriodRepo struct {
	periods []*domain.BlockedPeriod
}

func (f *fakeBlockedPeriodRepo) FindOverlapping(_ context.Context, resourceID uuid.UUID, period domain.Interval) ([]*domain.BlockedPeriod, error) {
	var out []*domain.BlockedPeriod
	for _, bp := range f.periods {
		if bp.ResourceID == resourceID && bp.Period.Overlaps(period) {
			out = append(out, bp)
		}
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ts(hour int) time.Time {
	return time.Date(2026, 7, 1, hour, 0, 0, 0, time.UTC)
}

func interval(t *testing.T, start, end time.Time) domain.Interval {
	t.Helper()
	iv, err := domain.NewInterval(start, end)
	require.NoError(t, err)
	return iv
}

type checkerEnv struct {
	checker      *Checker
	resources    *fakeResourceRepo
	reservations *fakeReservationRepo
	blocked      *fakeBlockedPeriodRepo
	resourceID   uuid.UUID
}

func newCheckerEnv() *checkerEnv {
	resourceID := uuid.New()
	resources := &fakeResourceRepo{resources: map[uuid.UUID]*domain.Resource{
		resourceID: {ID: resourceID, OwnerID: uuid.New(), Name: "Переговорная", PricePerHour: 100},
	}}
	reservations := &fakeReservationRepo{}
	blocked := &fakeBlockedPeriodRepo{}

	return &checkerEnv{
		checker:      NewChecker(resources, reservations, blocked, nopLogger{}),
		resources:    resources,
		reservations: reservations,
		blocked:      blocked,
		resourceID:   resourceID,
	}
}

func TestCheckerFreeInterval(t *testing.T) {
	env := newCheckerEnv()
	ctx := context.Background()

	err := env.checker.Check(ctx, env.resourceID, interval(t, ts(10), ts(12)), nil)
	assert.NoError(t, err)
}

func TestCheckerInvalidInterval(t *testing.T) {
	env := newCheckerEnv()

	err := env.checker.Check(context.Background(), env.resourceID,
		domain.Interval{Start: ts(12), End: ts(10)}, nil)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestCheckerResourceNotFound(t *testing.T) {
	env := newCheckerEnv()

	err := env.checker.Check(context.Background(), uuid.New(), interval(t, ts(10), ts(12)), nil)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestCheckerReservationConflict(t *testing.T) {
	env := newCheckerEnv()
	ctx := context.Background()

	env.reservations.reservations = []*domain.Reservation{{
		ID:         uuid.New(),
		ResourceID: env.resourceID,
		Period:     interval(t, ts(10), ts(12)),
		Status:     domain.StatusConfirmed,
	}}

	t.Run("overlapping interval conflicts", func(t *testing.T) {
		err := env.checker.Check(ctx, env.resourceID, interval(t, ts(11), ts(13)), nil)
		assert.ErrorIs(t, err, ErrReservationConflict)
	})

	t.Run("touching endpoint does not conflict", func(t *testing.T) {
		err := env.checker.Check(ctx, env.resourceID, interval(t, ts(12), ts(14)), nil)
		assert.NoError(t, err)
	})

	t.Run("cancelled reservation does not conflict", func(t *testing.T) {
		env.reservations.reservations[0].Status = domain.StatusCancelled
		defer func() { env.reservations.reservations[0].Status = domain.StatusConfirmed }()

		err := env.checker.Check(ctx, env.resourceID, interval(t, ts(11), ts(13)), nil)
		assert.NoError(t, err)
	})

	t.Run("own reservation excluded on reschedule", func(t *testing.T) {
		ownID := env.reservations.reservations[0].ID
		err := env.checker.Check(ctx, env.resourceID, interval(t, ts(11), ts(13)), &ownID)
		assert.NoError(t, err)
	})
}

func TestCheckerBlockedPeriodConflict(t *testing.T) {
	env := newCheckerEnv()
	ctx := context.Background()

	env.blocked.periods = []*domain.BlockedPeriod{{
		ID:         uuid.New(),
		ResourceID: env.resourceID,
		Period:     interval(t, ts(9), ts(11)),
		Reason:     "техобслуживание",
	}}

	t.Run("overlapping blocked period conflicts", func(t *testing.T) {
		err := env.checker.Check(ctx, env.resourceID, interval(t, ts(10), ts(12)), nil)
		assert.ErrorIs(t, err, ErrBlockedPeriodConflict)
	})

	t.Run("touching endpoint does not conflict", func(t *testing.T) {
		err := env.checker.Check(ctx, env.resourceID, interval(t, ts(11), ts(13)), nil)
		assert.NoError(t, err)
	})

	t.Run("blocked period wins over reservation conflict", func(t *testing.T) {
		env.reservations.reservations = []*domain.Reservation{{
			ID:         uuid.New(),
			ResourceID: env.resourceID,
			Period:     interval(t, ts(10), ts(12)),
			Status:     domain.StatusPending,
		}}

		err := env.checker.Check(ctx, env.resourceID, interval(t, ts(10), ts(11)), nil)
		assert.ErrorIs(t, err, ErrBlockedPeriodConflict)
	})
}
