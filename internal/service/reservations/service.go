package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
	reservationRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/reservation"
	resourceRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/resource"
	identityClient "github.com/rodrigocvmd/pgra-backend/internal/integrations/identityservice"
	"github.com/rodrigocvmd/pgra-backend/internal/service/reservations/models"
)

// Service сервис жизненного цикла бронирований.
// Переходы статусов проходят через таблицу domain.CanTransition,
// права - через таблицу domain.CanPerform; оба в единственной точке.
type Service struct {
	reservationRepo ReservationRepository
	resourceRepo    ResourceRepository
	identityClient  IdentityClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	resourceRepo ResourceRepository,
	identityClient IdentityClient,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		resourceRepo:    resourceRepo,
		identityClient:  identityClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет провайдер времени (используется в тестах)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID.
// Видимость: бронирующий, владелец ресурса или администратор.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, callerID uuid.UUID) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s for caller=%s", id, callerID)

	reservation, resource, err := s.getReservationWithResource(ctx, id)
	if err != nil {
		return nil, err
	}

	caller, err := s.resolveCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if !domain.CanPerform(domain.ActionViewReservation, caller, resource.OwnerID, reservation.UserID) {
		s.logger.Warn("GetByID: access denied for caller=%s to reservation id=%s", callerID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает бронирования пользователя.
// Пользователь видит только свои бронирования; администратор - любые.
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%s, caller=%s", req.UserID, req.CallerID)

	caller, err := s.resolveCaller(ctx, req.CallerID)
	if err != nil {
		return nil, err
	}

	if req.UserID != caller.UserID && !caller.IsAdmin() {
		s.logger.Warn("GetUserReservations: access denied for caller=%s to user=%s bookings", req.CallerID, req.UserID)
		return nil, ErrAccessDenied
	}

	status, err := s.parseStatusFilter(req.Status)
	if err != nil {
		return nil, err
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%s",
		len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetOwnerReservations получает бронирования на всех ресурсах владельца.
// Владелец видит только свои ресурсы; администратор - любые.
func (s *Service) GetOwnerReservations(ctx context.Context, req *models.GetOwnerReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetOwnerReservations: fetching reservations for owner=%s, caller=%s", req.OwnerID, req.CallerID)

	caller, err := s.resolveCaller(ctx, req.CallerID)
	if err != nil {
		return nil, err
	}

	if req.OwnerID != caller.UserID && !caller.IsAdmin() {
		s.logger.Warn("GetOwnerReservations: access denied for caller=%s to owner=%s bookings", req.CallerID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	status, err := s.parseStatusFilter(req.Status)
	if err != nil {
		return nil, err
	}

	reservations, err := s.reservationRepo.GetByResourceOwner(ctx, req.OwnerID, status)
	if err != nil {
		s.logger.Error("GetOwnerReservations: repository error for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetOwnerReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOwnerReservations: successfully fetched %d reservations for owner=%s",
		len(reservations), req.OwnerID)
	return models.FromDomainReservationList(reservations), nil
}

// Confirm подтверждает бронирование: pending -> confirmed.
// Доступно владельцу ресурса или администратору.
func (s *Service) Confirm(ctx context.Context, reservationID uuid.UUID, callerID uuid.UUID) (*models.ReservationResponse, error) {
	s.logger.Info("Confirm: confirming reservation id=%s by caller=%s", reservationID, callerID)

	reservation, resource, err := s.getReservationWithResource(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	caller, err := s.resolveCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	// Права проверяются перед каждой мутацией статуса
	if !domain.CanPerform(domain.ActionConfirmReservation, caller, resource.OwnerID, reservation.UserID) {
		s.logger.Warn("Confirm: access denied for caller=%s to reservation id=%s", callerID, reservationID)
		return nil, ErrAccessDenied
	}

	if !reservation.CanBeConfirmed() {
		s.logger.Warn("Confirm: reservation id=%s cannot be confirmed, status=%s", reservationID, reservation.Status)
		return nil, ErrCannotConfirm
	}

	// Сторожевое условие по статусу в самом UPDATE: конкурентная отмена
	// между чтением и записью не будет молча перезаписана
	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, domain.StatusPending, domain.StatusConfirmed); err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrStatusNotMatched):
			s.logger.Warn("Confirm: reservation id=%s changed status concurrently", reservationID)
			return nil, ErrCannotConfirm
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			return nil, ErrReservationNotFound
		default:
			s.logger.Error("Confirm: repository error for reservation id=%s: %v", reservationID, err)
			return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
		}
	}

	reservation.Status = domain.StatusConfirmed

	s.logger.Info("Confirm: successfully confirmed reservation id=%s", reservationID)
	return models.FromDomainReservation(reservation), nil
}

// Cancel отменяет бронирование: pending|confirmed -> cancelled.
// Доступно бронирующему, владельцу ресурса или администратору.
// Отмена уже отмененного бронирования возвращает ErrCannotCancel -
// операция никогда не завершается успешно молча.
func (s *Service) Cancel(ctx context.Context, reservationID uuid.UUID, callerID uuid.UUID) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%s by caller=%s", reservationID, callerID)

	reservation, resource, err := s.getReservationWithResource(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	caller, err := s.resolveCaller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if !domain.CanPerform(domain.ActionCancelReservation, caller, resource.OwnerID, reservation.UserID) {
		s.logger.Warn("Cancel: access denied for caller=%s to reservation id=%s", callerID, reservationID)
		return nil, ErrAccessDenied
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%s cannot be cancelled, status=%s", reservationID, reservation.Status)
		return nil, ErrCannotCancel
	}

	// UPDATE затрагивает только строки в статусах pending/confirmed:
	// конкурентный переход в терминальный статус не будет перезаписан
	if err := s.reservationRepo.Cancel(ctx, reservationID); err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrStatusNotMatched):
			s.logger.Warn("Cancel: reservation id=%s changed status concurrently", reservationID)
			return nil, ErrCannotCancel
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			return nil, ErrReservationNotFound
		default:
			s.logger.Error("Cancel: repository error for reservation id=%s: %v", reservationID, err)
			return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	now := s.timeProvider.Now()
	reservation.Status = domain.StatusCancelled
	reservation.CancelledAt = &now

	s.logger.Info("Cancel: successfully cancelled reservation id=%s", reservationID)
	return models.FromDomainReservation(reservation), nil
}

// Delete физически удаляет бронирование. Административная операция;
// в отличие от Cancel (мягкая смена статуса) не сохраняет историю.
func (s *Service) Delete(ctx context.Context, reservationID uuid.UUID, callerID uuid.UUID) error {
	s.logger.Info("Delete: deleting reservation id=%s by caller=%s", reservationID, callerID)

	reservation, resource, err := s.getReservationWithResource(ctx, reservationID)
	if err != nil {
		return err
	}

	caller, err := s.resolveCaller(ctx, callerID)
	if err != nil {
		return err
	}

	if !domain.CanPerform(domain.ActionDeleteReservation, caller, resource.OwnerID, reservation.UserID) {
		s.logger.Warn("Delete: access denied for caller=%s to reservation id=%s", callerID, reservationID)
		return ErrAccessDenied
	}

	if err := s.reservationRepo.Delete(ctx, reservationID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%s: %v", reservationID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted reservation id=%s", reservationID)
	return nil
}

// FinalizePast переводит подтвержденные бронирования, чей интервал полностью
// в прошлом, в терминальный статус finalized. Вызывается периодически
// из фонового цикла (см. cmd/main.go).
func (s *Service) FinalizePast(ctx context.Context) (int64, error) {
	now := s.timeProvider.Now()

	count, err := s.reservationRepo.FinalizePast(ctx, now)
	if err != nil {
		s.logger.Error("FinalizePast: repository error: %v", err)
		return 0, fmt.Errorf("%w: FinalizePast - repository error: %v", ErrInternal, err)
	}

	if count > 0 {
		s.logger.Info("FinalizePast: finalized %d past confirmed reservations", count)
	}
	return count, nil
}

// Вспомогательные методы

// getReservationWithResource получает бронирование вместе с его ресурсом
func (s *Service) getReservationWithResource(ctx context.Context, id uuid.UUID) (*domain.Reservation, *domain.Resource, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("reservation id=%s not found", id)
			return nil, nil, ErrReservationNotFound
		}
		s.logger.Error("failed to get reservation id=%s: %v", id, err)
		return nil, nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	resource, err := s.resourceRepo.GetByID(ctx, reservation.ResourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Error("resource id=%s not found for reservation id=%s", reservation.ResourceID, id)
			return nil, nil, ErrResourceNotFound
		}
		s.logger.Error("failed to get resource id=%s: %v", reservation.ResourceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	return reservation, resource, nil
}

// resolveCaller получает роль вызывающего пользователя из identity-сервиса
func (s *Service) resolveCaller(ctx context.Context, callerID uuid.UUID) (domain.Caller, error) {
	user, err := s.identityClient.GetUser(ctx, callerID)
	if err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			s.logger.Warn("caller id=%s not found", callerID)
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

// parseStatusFilter валидирует опциональный фильтр статуса
func (s *Service) parseStatusFilter(raw *string) (*domain.ReservationStatus, error) {
	if raw == nil {
		return nil, nil
	}

	status, ok := domain.ParseReservationStatus(*raw)
	if !ok {
		s.logger.Warn("invalid status filter %q", *raw)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	return &status, nil
}
