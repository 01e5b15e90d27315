package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
	reservationRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/reservation"
	resourceRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/resource"
	identityClient "github.com/rodrigocvmd/pgra-backend/internal/integrations/identityservice"
	"github.com/rodrigocvmd/pgra-backend/internal/service/conflicts"
)

// Фейки зависимостей

type fakeReservationRepo struct {
	created   []*domain.Reservation
	createErr error
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *res
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.created = append(f.created, &stored)
	return &stored, nil
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

type fakeChecker struct {
	err   error
	calls int
}

func (f *fakeChecker) Check(_ context.Context, _ uuid.UUID, _ domain.Interval, _ *uuid.UUID) error {
	f.calls++
	return f.err
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

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ts(hour int) time.Time {
	return time.Date(2026, 7, 1, hour, 0, 0, 0, time.UTC)
}

type env struct {
	uc           *UseCase
	reservations *fakeReservationRepo
	checker      *fakeChecker
	txManager    *fakeTxManager
	resourceID   uuid.UUID
	userID       uuid.UUID
}

func newEnv(pricePerHour float64) *env {
	resourceID := uuid.New()
	userID := uuid.New()

	reservations := &fakeReservationRepo{}
	resources := &fakeResourceRepo{resources: map[uuid.UUID]*domain.Resource{
		resourceID: {ID: resourceID, OwnerID: uuid.New(), Name: "Переговорная", PricePerHour: pricePerHour},
	}}
	checker := &fakeChecker{}
	identity := &fakeIdentityClient{users: map[uuid.UUID]*identityClient.User{
		userID: {ID: userID, Name: "User", Role: "USER"},
	}}
	txManager := &fakeTxManager{}

	uc := NewUseCase(reservations, resources, checker, identity, txManager, nopLogger{}).
		WithTimeProvider(&fixedTimeProvider{now: ts(8)})

	return &env{
		uc:           uc,
		reservations: reservations,
		checker:      checker,
		txManager:    txManager,
		resourceID:   resourceID,
		userID:       userID,
	}
}

func TestExecuteSuccess(t *testing.T) {
	e := newEnv(100)

	resp, err := e.uc.Execute(context.Background(), &Request{
		UserID:     e.userID,
		ResourceID: e.resourceID,
		StartTime:  ts(10),
		EndTime:    ts(12),
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 200.0, resp.TotalPrice, "2 часа по 100")
	assert.Equal(t, e.resourceID, resp.ResourceID)
	assert.Equal(t, e.userID, resp.UserID)
	assert.NotEqual(t, uuid.Nil, resp.ID)

	assert.Equal(t, 1, e.txManager.calls, "проверка и запись в одной транзакции")
	assert.Equal(t, 1, e.checker.calls)
	require.Len(t, e.reservations.created, 1)
	assert.Equal(t, domain.StatusPending, e.reservations.created[0].Status)
}

func TestExecuteFractionalHours(t *testing.T) {
	e := newEnv(100)

	resp, err := e.uc.Execute(context.Background(), &Request{
		UserID:     e.userID,
		ResourceID: e.resourceID,
		StartTime:  ts(10),
		EndTime:    ts(10).Add(90 * time.Minute),
	})
	require.NoError(t, err)

	assert.Equal(t, 150.0, resp.TotalPrice, "1.5 часа по 100")
}

func TestExecuteRoundsPriceAtPersistence(t *testing.T) {
	e := newEnv(99.99)

	resp, err := e.uc.Execute(context.Background(), &Request{
		UserID:     e.userID,
		ResourceID: e.resourceID,
		StartTime:  ts(10),
		EndTime:    ts(10).Add(100 * time.Minute),
	})
	require.NoError(t, err)

	// 99.99 * 100/60 = 166.65
	assert.Equal(t, 166.65, resp.TotalPrice)
}

func TestExecuteConflicts(t *testing.T) {
	t.Run("reservation conflict", func(t *testing.T) {
		e := newEnv(100)
		e.checker.err = conflicts.ErrReservationConflict

		_, err := e.uc.Execute(context.Background(), &Request{
			UserID:     e.userID,
			ResourceID: e.resourceID,
			StartTime:  ts(10),
			EndTime:    ts(12),
		})
		assert.ErrorIs(t, err, ErrReservationConflict)
		assert.Empty(t, e.reservations.created, "при конфликте ничего не записывается")
	})

	t.Run("blocked period conflict", func(t *testing.T) {
		e := newEnv(100)
		e.checker.err = conflicts.ErrBlockedPeriodConflict

		_, err := e.uc.Execute(context.Background(), &Request{
			UserID:     e.userID,
			ResourceID: e.resourceID,
			StartTime:  ts(10),
			EndTime:    ts(12),
		})
		assert.ErrorIs(t, err, ErrBlockedPeriodConflict)
		assert.Empty(t, e.reservations.created)
	})

	t.Run("interval taken at insert", func(t *testing.T) {
		// Проверка конфликтов прошла, но exclusion constraint отклонил
		// вставку: конкурентное бронирование успело занять интервал
		e := newEnv(100)
		e.reservations.createErr = reservationRepo.ErrIntervalTaken

		_, err := e.uc.Execute(context.Background(), &Request{
			UserID:     e.userID,
			ResourceID: e.resourceID,
			StartTime:  ts(10),
			EndTime:    ts(12),
		})
		assert.ErrorIs(t, err, ErrReservationConflict,
			"срабатывание ограничения БД отдается как конфликт, а не внутренняя ошибка")
		assert.NotErrorIs(t, err, ErrInternal)
	})
}

func TestExecuteValidation(t *testing.T) {
	t.Run("end before start", func(t *testing.T) {
		e := newEnv(100)

		_, err := e.uc.Execute(context.Background(), &Request{
			UserID:     e.userID,
			ResourceID: e.resourceID,
			StartTime:  ts(12),
			EndTime:    ts(10),
		})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("interval in the past", func(t *testing.T) {
		e := newEnv(100)

		_, err := e.uc.Execute(context.Background(), &Request{
			UserID:     e.userID,
			ResourceID: e.resourceID,
			StartTime:  ts(7), // timeProvider возвращает ts(8)
			EndTime:    ts(9),
		})
		assert.ErrorIs(t, err, ErrIntervalInPast)
	})

	t.Run("missing user id", func(t *testing.T) {
		e := newEnv(100)

		_, err := e.uc.Execute(context.Background(), &Request{
			ResourceID: e.resourceID,
			StartTime:  ts(10),
			EndTime:    ts(12),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecuteNotFound(t *testing.T) {
	t.Run("unknown resource", func(t *testing.T) {
		e := newEnv(100)

		_, err := e.uc.Execute(context.Background(), &Request{
			UserID:     e.userID,
			ResourceID: uuid.New(),
			StartTime:  ts(10),
			EndTime:    ts(12),
		})
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		e := newEnv(100)

		_, err := e.uc.Execute(context.Background(), &Request{
			UserID:     uuid.New(),
			ResourceID: e.resourceID,
			StartTime:  ts(10),
			EndTime:    ts(12),
		})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
