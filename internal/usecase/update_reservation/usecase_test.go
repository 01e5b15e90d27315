package update_reservation

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
	"github.com/rodrigocvmd/pgra-backend/pkg/ptr"
)

// Фейки зависимостей

type fakeReservationRepo struct {
	reservations map[uuid.UUID]*domain.Reservation
	updated      bool
	updateErr    error
	updatedAt    time.Time
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeReservationRepo) UpdateInterval(_ context.Context, id uuid.UUID, period domain.Interval, totalPrice float64) (time.Time, error) {
	if f.updateErr != nil {
		return time.Time{}, f.updateErr
	}
	res, ok := f.reservations[id]
	if !ok {
		return time.Time{}, reservationRepo.ErrReservationNotFound
	}
	res.Period = period
	res.TotalPrice = totalPrice
	f.updated = true
	return f.updatedAt, nil
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
	err           error
	lastExcludeID *uuid.UUID
}

func (f *fakeChecker) Check(_ context.Context, _ uuid.UUID, _ domain.Interval, excludeID *uuid.UUID) error {
	f.lastExcludeID = excludeID
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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
	uc            *UseCase
	reservations  *fakeReservationRepo
	checker       *fakeChecker
	reservationID uuid.UUID
	resourceID    uuid.UUID
	ownerID       uuid.UUID
	bookerID      uuid.UUID
}

func newEnv(status domain.ReservationStatus) *env {
	reservationID := uuid.New()
	resourceID := uuid.New()
	ownerID := uuid.New()
	bookerID := uuid.New()

	reservations := &fakeReservationRepo{updatedAt: ts(9), reservations: map[uuid.UUID]*domain.Reservation{
		reservationID: {
			ID:         reservationID,
			ResourceID: resourceID,
			UserID:     bookerID,
			Period:     domain.Interval{Start: ts(10), End: ts(12)},
			TotalPrice: 200,
			Status:     status,
		},
	}}
	resources := &fakeResourceRepo{resources: map[uuid.UUID]*domain.Resource{
		resourceID: {ID: resourceID, OwnerID: ownerID, Name: "Переговорная", PricePerHour: 100},
	}}
	checker := &fakeChecker{}
	identity := &fakeIdentityClient{users: map[uuid.UUID]*identityClient.User{
		ownerID:  {ID: ownerID, Name: "Owner", Role: "OWNER"},
		bookerID: {ID: bookerID, Name: "Booker", Role: "USER"},
	}}

	uc := NewUseCase(reservations, resources, checker, identity, fakeTxManager{}, nopLogger{}).
		WithTimeProvider(&fixedTimeProvider{now: ts(8)})

	return &env{
		uc:            uc,
		reservations:  reservations,
		checker:       checker,
		reservationID: reservationID,
		resourceID:    resourceID,
		ownerID:       ownerID,
		bookerID:      bookerID,
	}
}

func TestExecuteReschedule(t *testing.T) {
	e := newEnv(domain.StatusPending)

	resp, err := e.uc.Execute(context.Background(), &Request{
		ReservationID: e.reservationID,
		CallerID:      e.bookerID,
		StartTime:     ptr.Ptr(ts(14)),
		EndTime:       ptr.Ptr(ts(17)),
	})
	require.NoError(t, err)

	assert.Equal(t, ts(14), resp.StartTime)
	assert.Equal(t, ts(17), resp.EndTime)
	assert.Equal(t, 300.0, resp.TotalPrice, "цена пересчитана по новому интервалу")
	assert.True(t, e.reservations.updated)

	// Собственное бронирование исключается из проверки конфликтов
	require.NotNil(t, e.checker.lastExcludeID)
	assert.Equal(t, e.reservationID, *e.checker.lastExcludeID)

	// updated_at в ответе - сохраненное БД значение, а не локальные часы
	assert.Equal(t, ts(9), resp.UpdatedAt)
}

func TestExecuteIntervalTakenAtWrite(t *testing.T) {
	// Проверка конфликтов прошла, но exclusion constraint отклонил запись:
	// конкурентное бронирование успело занять интервал
	e := newEnv(domain.StatusPending)
	e.reservations.updateErr = reservationRepo.ErrIntervalTaken

	_, err := e.uc.Execute(context.Background(), &Request{
		ReservationID: e.reservationID,
		CallerID:      e.bookerID,
		StartTime:     ptr.Ptr(ts(14)),
		EndTime:       ptr.Ptr(ts(16)),
	})
	assert.ErrorIs(t, err, ErrReservationConflict,
		"срабатывание ограничения БД отдается как конфликт, а не внутренняя ошибка")
	assert.NotErrorIs(t, err, ErrInternal)
}

func TestExecutePartialUpdate(t *testing.T) {
	t.Run("only end time", func(t *testing.T) {
		e := newEnv(domain.StatusConfirmed)

		resp, err := e.uc.Execute(context.Background(), &Request{
			ReservationID: e.reservationID,
			CallerID:      e.bookerID,
			EndTime:       ptr.Ptr(ts(13)),
		})
		require.NoError(t, err)

		assert.Equal(t, ts(10), resp.StartTime, "начало не изменилось")
		assert.Equal(t, ts(13), resp.EndTime)
		assert.Equal(t, 300.0, resp.TotalPrice)
	})

	t.Run("no fields provided", func(t *testing.T) {
		e := newEnv(domain.StatusPending)

		_, err := e.uc.Execute(context.Background(), &Request{
			ReservationID: e.reservationID,
			CallerID:      e.bookerID,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("merged interval invalid", func(t *testing.T) {
		e := newEnv(domain.StatusPending)

		_, err := e.uc.Execute(context.Background(), &Request{
			ReservationID: e.reservationID,
			CallerID:      e.bookerID,
			EndTime:       ptr.Ptr(ts(9)), // раньше существующего начала
		})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestExecuteTerminalStatuses(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.StatusCancelled, domain.StatusFinalized} {
		t.Run(string(status), func(t *testing.T) {
			e := newEnv(status)

			_, err := e.uc.Execute(context.Background(), &Request{
				ReservationID: e.reservationID,
				CallerID:      e.bookerID,
				StartTime:     ptr.Ptr(ts(14)),
				EndTime:       ptr.Ptr(ts(16)),
			})
			assert.ErrorIs(t, err, ErrCannotUpdate)
			assert.False(t, e.reservations.updated)
		})
	}
}

func TestExecuteAccessControl(t *testing.T) {
	t.Run("owner can reschedule", func(t *testing.T) {
		e := newEnv(domain.StatusPending)

		_, err := e.uc.Execute(context.Background(), &Request{
			ReservationID: e.reservationID,
			CallerID:      e.ownerID,
			StartTime:     ptr.Ptr(ts(14)),
			EndTime:       ptr.Ptr(ts(16)),
		})
		assert.NoError(t, err)
	})

	t.Run("stranger denied", func(t *testing.T) {
		e := newEnv(domain.StatusPending)
		strangerID := uuid.New()
		e.uc.identityClient.(*fakeIdentityClient).users[strangerID] =
			&identityClient.User{ID: strangerID, Name: "Stranger", Role: "USER"}

		_, err := e.uc.Execute(context.Background(), &Request{
			ReservationID: e.reservationID,
			CallerID:      strangerID,
			StartTime:     ptr.Ptr(ts(14)),
			EndTime:       ptr.Ptr(ts(16)),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestExecuteConflictOnNewInterval(t *testing.T) {
	e := newEnv(domain.StatusPending)
	e.checker.err = conflicts.ErrReservationConflict

	_, err := e.uc.Execute(context.Background(), &Request{
		ReservationID: e.reservationID,
		CallerID:      e.bookerID,
		StartTime:     ptr.Ptr(ts(14)),
		EndTime:       ptr.Ptr(ts(16)),
	})
	assert.ErrorIs(t, err, ErrReservationConflict)
	assert.False(t, e.reservations.updated, "интервал не изменяется при конфликте")
}

func TestExecuteNotFound(t *testing.T) {
	e := newEnv(domain.StatusPending)

	_, err := e.uc.Execute(context.Background(), &Request{
		ReservationID: uuid.New(),
		CallerID:      e.bookerID,
		StartTime:     ptr.Ptr(ts(14)),
		EndTime:       ptr.Ptr(ts(16)),
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
