package resources

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
	resourceRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/resource"
	identityClient "github.com/rodrigocvmd/pgra-backend/internal/integrations/identityservice"
	"github.com/rodrigocvmd/pgra-backend/internal/service/resources/models"
)

// Service сервис управления ресурсами
type Service struct {
	resourceRepo    ResourceRepository
	reservationRepo ReservationRepository
	identityClient  IdentityClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса ресурсов
func NewService(
	resourceRepo ResourceRepository,
	reservationRepo ReservationRepository,
	identityClient IdentityClient,
	logger Logger,
) *Service {
	return &Service{
		resourceRepo:    resourceRepo,
		reservationRepo: reservationRepo,
		identityClient:  identityClient,
		logger:          logger,
	}
}

// Create создает новый ресурс. Владельцем становится вызывающий пользователь.
func (s *Service) Create(ctx context.Context, req *models.CreateResourceRequest) (*models.ResourceResponse, error) {
	s.logger.Info("Create: owner=%s, name=%q", req.OwnerID, req.Name)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: invalid request from owner=%s: %v", req.OwnerID, err)
		return nil, err
	}

	// Владелец должен существовать в identity-сервисе
	if _, err := s.identityClient.GetUser(ctx, req.OwnerID); err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			s.logger.Warn("Create: owner id=%s not found", req.OwnerID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("Create: failed to get owner id=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: Create - failed to get owner: %v", ErrInternal, err)
	}

	created, err := s.resourceRepo.Create(ctx, &domain.Resource{
		OwnerID:      req.OwnerID,
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		PricePerHour: req.PricePerHour,
	})
	if err != nil {
		s.logger.Error("Create: repository error for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created resource id=%s for owner=%s", created.ID, req.OwnerID)
	return models.FromDomainResource(created), nil
}

// GetByID получает ресурс по ID. Публичная операция.
func (s *Service) GetByID(ctx context.Context, resourceID uuid.UUID) (*models.ResourceResponse, error) {
	s.logger.Info("GetByID: resource=%s", resourceID)

	resource, err := s.getResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainResource(resource), nil
}

// List получает все ресурсы. Публичная операция.
func (s *Service) List(ctx context.Context) (*models.ResourceListResponse, error) {
	s.logger.Info("List: fetching all resources")

	resources, err := s.resourceRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainResourceList(resources), nil
}

// GetMyResources получает ресурсы, принадлежащие вызывающему пользователю.
func (s *Service) GetMyResources(ctx context.Context, ownerID uuid.UUID) (*models.ResourceListResponse, error) {
	s.logger.Info("GetMyResources: owner=%s", ownerID)

	resources, err := s.resourceRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		s.logger.Error("GetMyResources: repository error for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: GetMyResources - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainResourceList(resources), nil
}

// Update частично обновляет ресурс.
// Доступно владельцу ресурса или администратору.
func (s *Service) Update(ctx context.Context, resourceID uuid.UUID, req *models.UpdateResourceRequest) (*models.ResourceResponse, error) {
	s.logger.Info("Update: resource=%s, caller=%s", resourceID, req.CallerID)

	upd := domain.ResourceUpdate{
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		PricePerHour: req.PricePerHour,
	}
	if err := validateUpdate(upd); err != nil {
		s.logger.Warn("Update: invalid request for resource=%s: %v", resourceID, err)
		return nil, err
	}

	resource, err := s.getResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	if err := s.checkManageAccess(ctx, req.CallerID, resource); err != nil {
		s.logger.Warn("Update: access denied for caller=%s to resource=%s", req.CallerID, resourceID)
		return nil, err
	}

	if err := s.resourceRepo.Update(ctx, resourceID, upd); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		s.logger.Error("Update: repository error for resource=%s: %v", resourceID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated resource id=%s", resourceID)
	return models.FromDomainResource(updated), nil
}

// Delete удаляет ресурс. Доступно владельцу ресурса или администратору.
// Удаление запрещено, пока на ресурс ссылаются бронирования: активные
// дают ErrHasActiveReservations, исторические - ErrHasReservationHistory.
func (s *Service) Delete(ctx context.Context, resourceID uuid.UUID, callerID uuid.UUID) error {
	s.logger.Info("Delete: resource=%s, caller=%s", resourceID, callerID)

	resource, err := s.getResource(ctx, resourceID)
	if err != nil {
		return err
	}

	caller, err := s.resolveCaller(ctx, callerID)
	if err != nil {
		return err
	}

	if !domain.CanPerform(domain.ActionManageResource, caller, resource.OwnerID, uuid.Nil) {
		s.logger.Warn("Delete: access denied for caller=%s to resource=%s", callerID, resourceID)
		return ErrAccessDenied
	}

	count, err := s.reservationRepo.CountActiveByResource(ctx, resourceID)
	if err != nil {
		s.logger.Error("Delete: failed to count active reservations for resource=%s: %v", resourceID, err)
		return fmt.Errorf("%w: Delete - failed to count active reservations: %v", ErrInternal, err)
	}
	if count > 0 {
		s.logger.Warn("Delete: resource id=%s has %d active reservations", resourceID, count)
		return ErrHasActiveReservations
	}

	if err := s.resourceRepo.Delete(ctx, resourceID); err != nil {
		switch {
		case errors.Is(err, resourceRepo.ErrResourceNotFound):
			return ErrResourceNotFound
		case errors.Is(err, resourceRepo.ErrHasReservations):
			// Счетчик активных уже проверен выше, значит внешний ключ
			// удержали исторические (cancelled/finalized) бронирования
			// либо конкурентно созданное активное
			s.logger.Warn("Delete: resource id=%s is referenced by reservations", resourceID)
			return ErrHasReservationHistory
		default:
			s.logger.Error("Delete: repository error for resource=%s: %v", resourceID, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Delete: successfully deleted resource id=%s", resourceID)
	return nil
}

// Вспомогательные методы

func (s *Service) getResource(ctx context.Context, resourceID uuid.UUID) (*domain.Resource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("resource id=%s not found", resourceID)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("failed to get resource id=%s: %v", resourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}
	return resource, nil
}

func (s *Service) resolveCaller(ctx context.Context, callerID uuid.UUID) (domain.Caller, error) {
	user, err := s.identityClient.GetUser(ctx, callerID)
	if err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			return domain.Caller{}, ErrUserNotFound
		}
		s.logger.Error("failed to get caller id=%s: %v", callerID, err)
		return domain.Caller{}, fmt.Errorf("%w: failed to get caller: %v", ErrInternal, err)
	}

	role, ok := domain.ParseRole(user.Role)
	if !ok {
		s.logger.Error("identity service returned unknown role %q for user id=%s", user.Role, callerID)
		return domain.Caller{}, fmt.Errorf("%w: unknown role %q", ErrInternal, user.Role)
	}

	return domain.Caller{UserID: user.ID, Role: role}, nil
}

// checkManageAccess проверяет право управлять ресурсом
func (s *Service) checkManageAccess(ctx context.Context, callerID uuid.UUID, resource *domain.Resource) error {
	caller, err := s.resolveCaller(ctx, callerID)
	if err != nil {
		return err
	}

	if !domain.CanPerform(domain.ActionManageResource, caller, resource.OwnerID, uuid.Nil) {
		return ErrAccessDenied
	}
	return nil
}

// Валидация

func validateCreateRequest(req *models.CreateResourceRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if req.Description != nil && len(*req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description is too long", ErrInvalidInput)
	}
	if req.PricePerHour < 0 {
		return fmt.Errorf("%w: price per hour must be non-negative", ErrInvalidInput)
	}
	return nil
}

func validateUpdate(upd domain.ResourceUpdate) error {
	if upd.IsEmpty() {
		return fmt.Errorf("%w: at least one field must be provided", ErrInvalidInput)
	}
	if upd.Name != nil {
		if *upd.Name == "" {
			return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		if len(*upd.Name) > domain.MaxNameLength {
			return fmt.Errorf("%w: name is too long", ErrInvalidInput)
		}
	}
	if upd.Description != nil && len(*upd.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description is too long", ErrInvalidInput)
	}
	if upd.PricePerHour != nil && *upd.PricePerHour < 0 {
		return fmt.Errorf("%w: price per hour must be non-negative", ErrInvalidInput)
	}
	return nil
}
