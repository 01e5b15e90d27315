package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
	blockedRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/blockedperiod"
	resourceRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/resource"
	identityClient "github.com/rodrigocvmd/pgra-backend/internal/integrations/identityservice"
	"github.com/rodrigocvmd/pgra-backend/internal/service/availability/models"
)

// Service сервис управления доступностью ресурсов (заблокированными периодами)
type Service struct {
	blockedPeriodRepo BlockedPeriodRepository
	resourceRepo      ResourceRepository
	identityClient    IdentityClient
	logger            Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	blockedPeriodRepo BlockedPeriodRepository,
	resourceRepo ResourceRepository,
	identityClient IdentityClient,
	logger Logger,
) *Service {
	return &Service{
		blockedPeriodRepo: blockedPeriodRepo,
		resourceRepo:      resourceRepo,
		identityClient:    identityClient,
		logger:            logger,
	}
}

// AddBlockedPeriod добавляет заблокированный период к ресурсу.
// Доступно владельцу ресурса или администратору.
func (s *Service) AddBlockedPeriod(ctx context.Context, req *models.AddBlockedPeriodRequest) (*models.BlockedPeriodResponse, error) {
	s.logger.Info("AddBlockedPeriod: resource=%s, caller=%s", req.ResourceID, req.CallerID)

	// Инвариант blockedStart < blockedEnd проверяется здесь же
	period, err := domain.NewInterval(req.BlockedStart, req.BlockedEnd)
	if err != nil {
		s.logger.Warn("AddBlockedPeriod: invalid interval for resource=%s", req.ResourceID)
		return nil, ErrInvalidInterval
	}

	if req.Reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	resource, err := s.getResource(ctx, req.ResourceID)
	if err != nil {
		return nil, err
	}

	if err := s.checkManageAccess(ctx, req.CallerID, resource); err != nil {
		s.logger.Warn("AddBlockedPeriod: access denied for caller=%s to resource=%s", req.CallerID, req.ResourceID)
		return nil, err
	}

	created, err := s.blockedPeriodRepo.Create(ctx, &domain.BlockedPeriod{
		ResourceID: req.ResourceID,
		Period:     period,
		Reason:     req.Reason,
	})
	if err != nil {
		s.logger.Error("AddBlockedPeriod: repository error for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: AddBlockedPeriod - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddBlockedPeriod: successfully created blocked period id=%s for resource=%s",
		created.ID, req.ResourceID)
	return models.FromDomainBlockedPeriod(created), nil
}

// RemoveBlockedPeriod удаляет заблокированный период.
// Доступно владельцу ресурса или администратору.
func (s *Service) RemoveBlockedPeriod(ctx context.Context, blockedPeriodID uuid.UUID, callerID uuid.UUID) error {
	s.logger.Info("RemoveBlockedPeriod: blocked period=%s, caller=%s", blockedPeriodID, callerID)

	bp, err := s.blockedPeriodRepo.GetByID(ctx, blockedPeriodID)
	if err != nil {
		if errors.Is(err, blockedRepo.ErrBlockedPeriodNotFound) {
			s.logger.Warn("RemoveBlockedPeriod: blocked period id=%s not found", blockedPeriodID)
			return ErrBlockedPeriodNotFound
		}
		s.logger.Error("RemoveBlockedPeriod: repository error for id=%s: %v", blockedPeriodID, err)
		return fmt.Errorf("%w: RemoveBlockedPeriod - repository error: %v", ErrInternal, err)
	}

	resource, err := s.getResource(ctx, bp.ResourceID)
	if err != nil {
		return err
	}

	if err := s.checkManageAccess(ctx, callerID, resource); err != nil {
		s.logger.Warn("RemoveBlockedPeriod: access denied for caller=%s to blocked period=%s", callerID, blockedPeriodID)
		return err
	}

	if err := s.blockedPeriodRepo.Delete(ctx, blockedPeriodID); err != nil {
		if errors.Is(err, blockedRepo.ErrBlockedPeriodNotFound) {
			return ErrBlockedPeriodNotFound
		}
		s.logger.Error("RemoveBlockedPeriod: repository error for id=%s: %v", blockedPeriodID, err)
		return fmt.Errorf("%w: RemoveBlockedPeriod - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveBlockedPeriod: successfully removed blocked period id=%s", blockedPeriodID)
	return nil
}

// ListBlockedPeriods получает заблокированные периоды ресурса.
// Публичная операция: периоды видны всем как информация о доступности.
func (s *Service) ListBlockedPeriods(ctx context.Context, resourceID uuid.UUID) (*models.BlockedPeriodListResponse, error) {
	s.logger.Info("ListBlockedPeriods: resource=%s", resourceID)

	if _, err := s.getResource(ctx, resourceID); err != nil {
		return nil, err
	}

	periods, err := s.blockedPeriodRepo.ListByResource(ctx, resourceID)
	if err != nil {
		s.logger.Error("ListBlockedPeriods: repository error for resource=%s: %v", resourceID, err)
		return nil, fmt.Errorf("%w: ListBlockedPeriods - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedPeriodList(periods), nil
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

// checkManageAccess проверяет право управлять доступностью ресурса
func (s *Service) checkManageAccess(ctx context.Context, callerID uuid.UUID, resource *domain.Resource) error {
	user, err := s.identityClient.GetUser(ctx, callerID)
	if err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("failed to get caller id=%s: %v", callerID, err)
		return fmt.Errorf("%w: failed to get caller: %v", ErrInternal, err)
	}

	role, ok := domain.ParseRole(user.Role)
	if !ok {
		s.logger.Error("identity service returned unknown role %q for user id=%s", user.Role, callerID)
		return fmt.Errorf("%w: unknown role %q", ErrInternal, user.Role)
	}

	caller := domain.Caller{UserID: user.ID, Role: role}
	if !domain.CanPerform(domain.ActionManageAvailability, caller, resource.OwnerID, uuid.Nil) {
		return ErrAccessDenied
	}
	return nil
}
