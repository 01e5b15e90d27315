package resources

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
	resourceRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/resource"
	identityClient "github.com/rodrigocvmd/pgra-backend/internal/integrations/identityservice"
	"github.com/rodrigocvmd/pgra-backend/internal/service/resources/models"
	"github.com/rodrigocvmd/pgra-backend/pkg/ptr"
)

// Фейки зависимостей

type fakeResourceRepo struct {
	resources map[uuid.UUID]*domain.Resource
	deleteErr error
}

func (f *fakeResourceRepo) Create(_ context.Context, res *domain.Resource) (*domain.Resource, error) {
	stored := *res
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.resources[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeResourceRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Resource, error) {
	res, ok := f.resources[id]
	if !ok {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return res, nil
}

func (f *fakeResourceRepo) List(_ context.Context) ([]*domain.Resource, error) {
	var out []*domain.Resource
	for _, res := range f.resources {
		out = append(out, res)
	}
	return out, nil
}

func (f *fakeResourceRepo) GetByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*domain.Resource, error) {
	var out []*domain.Resource
	for _, res := range f.resources {
		if res.OwnerID == ownerID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeResourceRepo) Update(_ context.Context, id uuid.UUID, upd domain.ResourceUpdate) error {
	res, ok := f.resources[id]
	if !ok {
		return resourceRepo.ErrResourceNotFound
	}
	if upd.Name != nil {
		res.Name = *upd.Name
	}
	if upd.Description != nil {
		res.Description = upd.Description
	}
	if upd.ImageURL != nil {
		res.ImageURL = upd.ImageURL
	}
	if upd.PricePerHour != nil {
		res.PricePerHour = *upd.PricePerHour
	}
	return nil
}

func (f *fakeResourceRepo) Delete(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.resources[id]; !ok {
		return resourceRepo.ErrResourceNotFound
	}
	delete(f.resources, id)
	return nil
}

type fakeReservationRepo struct {
	activeCount int64
}

func (f *fakeReservationRepo) CountActiveByResource(_ context.Context, _ uuid.UUID) (int64, error) {
	return f.activeCount, nil
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

type env struct {
	svc          *Service
	resources    *fakeResourceRepo
	reservations *fakeReservationRepo
	resourceID   uuid.UUID
	ownerID      uuid.UUID
	adminID      uuid.UUID
	userID       uuid.UUID
}

func newEnv() *env {
	resourceID := uuid.New()
	ownerID := uuid.New()
	adminID := uuid.New()
	userID := uuid.New()

	resources := &fakeResourceRepo{resources: map[uuid.UUID]*domain.Resource{
		resourceID: {ID: resourceID, OwnerID: ownerID, Name: "Переговорная", PricePerHour: 100},
	}}
	reservations := &fakeReservationRepo{}
	identity := &fakeIdentityClient{users: map[uuid.UUID]*identityClient.User{
		ownerID: {ID: ownerID, Name: "Owner", Role: "OWNER"},
		adminID: {ID: adminID, Name: "Admin", Role: "ADMIN"},
		userID:  {ID: userID, Name: "User", Role: "USER"},
	}}

	return &env{
		svc:          NewService(resources, reservations, identity, nopLogger{}),
		resources:    resources,
		reservations: reservations,
		resourceID:   resourceID,
		ownerID:      ownerID,
		adminID:      adminID,
		userID:       userID,
	}
}

func TestCreate(t *testing.T) {
	t.Run("valid resource", func(t *testing.T) {
		e := newEnv()

		resp, err := e.svc.Create(context.Background(), &models.CreateResourceRequest{
			OwnerID:      e.userID,
			Name:         "Прожектор",
			Description:  ptr.Ptr("Сценический прожектор"),
			PricePerHour: 50,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.ID)
		assert.Equal(t, e.userID, resp.OwnerID)
	})

	t.Run("empty name", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.Create(context.Background(), &models.CreateResourceRequest{
			OwnerID:      e.userID,
			PricePerHour: 50,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("name too long", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.Create(context.Background(), &models.CreateResourceRequest{
			OwnerID:      e.userID,
			Name:         strings.Repeat("x", domain.MaxNameLength+1),
			PricePerHour: 50,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative price", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.Create(context.Background(), &models.CreateResourceRequest{
			OwnerID:      e.userID,
			Name:         "Прожектор",
			PricePerHour: -1,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown owner", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.Create(context.Background(), &models.CreateResourceRequest{
			OwnerID:      uuid.New(),
			Name:         "Прожектор",
			PricePerHour: 50,
		})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("owner updates price", func(t *testing.T) {
		e := newEnv()

		resp, err := e.svc.Update(context.Background(), e.resourceID, &models.UpdateResourceRequest{
			CallerID:     e.ownerID,
			PricePerHour: ptr.Ptr(150.0),
		})
		require.NoError(t, err)
		assert.Equal(t, 150.0, resp.PricePerHour)
	})

	t.Run("stranger denied", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.Update(context.Background(), e.resourceID, &models.UpdateResourceRequest{
			CallerID: e.userID,
			Name:     ptr.Ptr("Чужое имя"),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("empty update rejected", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.Update(context.Background(), e.resourceID, &models.UpdateResourceRequest{
			CallerID: e.ownerID,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown resource", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.Update(context.Background(), uuid.New(), &models.UpdateResourceRequest{
			CallerID: e.ownerID,
			Name:     ptr.Ptr("Имя"),
		})
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})
}

func TestDeleteResource(t *testing.T) {
	t.Run("owner deletes resource without reservations", func(t *testing.T) {
		e := newEnv()

		err := e.svc.Delete(context.Background(), e.resourceID, e.ownerID)
		require.NoError(t, err)
		assert.Empty(t, e.resources.resources)
	})

	t.Run("delete forbidden with active reservations", func(t *testing.T) {
		e := newEnv()
		e.reservations.activeCount = 2

		err := e.svc.Delete(context.Background(), e.resourceID, e.ownerID)
		assert.ErrorIs(t, err, ErrHasActiveReservations)
		assert.Len(t, e.resources.resources, 1)
	})

	t.Run("delete blocked by reservation history", func(t *testing.T) {
		// Активных бронирований нет, но внешний ключ удержал удаление:
		// на ресурс ссылаются отмененные или завершенные бронирования
		e := newEnv()
		e.resources.deleteErr = resourceRepo.ErrHasReservations

		err := e.svc.Delete(context.Background(), e.resourceID, e.ownerID)
		assert.ErrorIs(t, err, ErrHasReservationHistory)
		assert.NotErrorIs(t, err, ErrHasActiveReservations,
			"история бронирований не выдается за активные бронирования")
	})

	t.Run("stranger denied", func(t *testing.T) {
		e := newEnv()

		err := e.svc.Delete(context.Background(), e.resourceID, e.userID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin deletes any resource", func(t *testing.T) {
		e := newEnv()

		err := e.svc.Delete(context.Background(), e.resourceID, e.adminID)
		assert.NoError(t, err)
	})
}

func TestListAndGet(t *testing.T) {
	t.Run("get by id", func(t *testing.T) {
		e := newEnv()

		resp, err := e.svc.GetByID(context.Background(), e.resourceID)
		require.NoError(t, err)
		assert.Equal(t, e.resourceID, resp.ID)
	})

	t.Run("unknown resource", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("list all", func(t *testing.T) {
		e := newEnv()

		resp, err := e.svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, resp.Resources, 1)
	})

	t.Run("list by owner", func(t *testing.T) {
		e := newEnv()

		resp, err := e.svc.GetMyResources(context.Background(), e.ownerID)
		require.NoError(t, err)
		assert.Len(t, resp.Resources, 1)

		empty, err := e.svc.GetMyResources(context.Background(), e.userID)
		require.NoError(t, err)
		assert.Empty(t, empty.Resources)
	})
}
