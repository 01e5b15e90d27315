package update_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
	reservationRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/reservation"
	resourceRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/resource"
	identityClient "github.com/rodrigocvmd/pgra-backend/internal/integrations/identityservice"
	"github.com/rodrigocvmd/pgra-backend/internal/service/conflicts"
)

// UseCase use case переноса бронирования на другой интервал
type UseCase struct {
	reservationRepo ReservationRepository
	resourceRepo    ResourceRepository
	checker         ConflictChecker
	identityClient  IdentityClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	resourceRepo ResourceRepository,
	checker ConflictChecker,
	identityClient IdentityClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		resourceRepo:    resourceRepo,
		checker:         checker,
		identityClient:  identityClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет провайдер времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute переносит бронирование на новый интервал.
// Проверка конфликтов исключает собственный ID бронирования и выполняется
// вместе с записью в одной SERIALIZABLE транзакции. Цена пересчитывается
// по текущей ставке ресурса.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: reservation=%s, caller=%s", req.ReservationID, req.CallerID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем роль вызывающего из identity-сервиса
	caller, err := uc.resolveCaller(ctx, req.CallerID)
	if err != nil {
		return nil, err
	}

	var result *domain.Reservation

	// 4. Проверка прав, конфликтов и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем бронирование (FOR UPDATE внутри транзакции)
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("UpdateReservation: reservation id=%s not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get reservation id=%s: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
		}

		// 4.2. Получаем ресурс (владелец и актуальная ставка)
		resource, err := uc.resourceRepo.GetByID(txCtx, reservation.ResourceID)
		if err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				uc.logger.Error("UpdateReservation: resource id=%s not found for reservation id=%s",
					reservation.ResourceID, reservation.ID)
				return ErrResourceNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get resource id=%s: %v", reservation.ResourceID, err)
			return fmt.Errorf("%w: failed to get resource: %w", ErrInternal, err)
		}

		// 4.3. Проверка прав: бронирующий, владелец ресурса или администратор
		if !domain.CanPerform(domain.ActionUpdateReservation, caller, resource.OwnerID, reservation.UserID) {
			uc.logger.Warn("UpdateReservation: access denied for caller=%s to reservation id=%s",
				caller.UserID, reservation.ID)
			return ErrAccessDenied
		}

		// 4.4. Терминальные статусы переносить нельзя
		if !reservation.CanBeUpdated() {
			uc.logger.Warn("UpdateReservation: reservation id=%s in status=%s cannot be updated",
				reservation.ID, reservation.Status)
			return ErrCannotUpdate
		}

		// 4.5. Собираем новый интервал из частичного обновления
		newPeriod := reservation.Period
		if req.StartTime != nil {
			newPeriod.Start = *req.StartTime
		}
		if req.EndTime != nil {
			newPeriod.End = *req.EndTime
		}

		if err := newPeriod.Validate(); err != nil {
			return ErrInvalidInterval
		}
		if newPeriod.Start.Before(now) {
			return ErrIntervalInPast
		}

		// 4.6. Проверяем новый интервал, исключая собственное бронирование
		if err := uc.checker.Check(txCtx, reservation.ResourceID, newPeriod, &reservation.ID); err != nil {
			return mapConflictError(err)
		}

		// 4.7. Пересчитываем цену по новому интервалу
		price, err := domain.ComputePrice(resource.PricePerHour, newPeriod)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to compute price: %v", err)
			return fmt.Errorf("%w: failed to compute price: %v", ErrInternal, err)
		}
		rounded := domain.RoundPrice(price)

		// 4.8. Сохраняем новый интервал и цену
		updatedAt, err := uc.reservationRepo.UpdateInterval(txCtx, reservation.ID, newPeriod, rounded)
		if err != nil {
			// Exclusion constraint БД - последняя линия защиты инварианта
			// непересечения: конкурентная запись проиграла гонку
			if errors.Is(err, reservationRepo.ErrIntervalTaken) {
				uc.logger.Warn("UpdateReservation: interval taken at write: reservation=%s", reservation.ID)
				return ErrReservationConflict
			}
			uc.logger.Error("UpdateReservation: failed to update interval: %v", err)
			return fmt.Errorf("%w: failed to update interval: %w", ErrInternal, err)
		}

		reservation.Period = newPeriod
		reservation.TotalPrice = rounded
		// Время обновления берем из БД, а не из локальных часов
		reservation.UpdatedAt = updatedAt

		result = reservation
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateReservation: successfully rescheduled reservation id=%s, price=%.2f",
		result.ID, result.TotalPrice)

	return fromDomain(result), nil
}

// resolveCaller получает роль вызывающего пользователя из identity-сервиса
func (uc *UseCase) resolveCaller(ctx context.Context, callerID uuid.UUID) (domain.Caller, error) {
	user, err := uc.identityClient.GetUser(ctx, callerID)
	if err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			uc.logger.Warn("UpdateReservation: caller id=%s not found", callerID)
			return domain.Caller{}, ErrUserNotFound
		}
		uc.logger.Error("UpdateReservation: failed to get caller id=%s: %v", callerID, err)
		return domain.Caller{}, fmt.Errorf("%w: failed to get caller: %v", ErrInternal, err)
	}

	role, ok := domain.ParseRole(user.Role)
	if !ok {
		uc.logger.Error("UpdateReservation: identity service returned unknown role %q for user id=%s",
			user.Role, callerID)
		return domain.Caller{}, fmt.Errorf("%w: unknown role %q", ErrInternal, user.Role)
	}

	return domain.Caller{UserID: user.ID, Role: role}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID == uuid.Nil {
		return fmt.Errorf("%w: reservationID is required", ErrInvalidInput)
	}

	if req.CallerID == uuid.Nil {
		return fmt.Errorf("%w: callerID is required", ErrInvalidInput)
	}

	// Перенос без изменения интервала не имеет смысла
	if req.StartTime == nil && req.EndTime == nil {
		return fmt.Errorf("%w: at least one of startTime/endTime is required", ErrInvalidInput)
	}

	return nil
}

// mapConflictError транслирует ошибки проверки конфликтов в ошибки usecase
func mapConflictError(err error) error {
	switch {
	case errors.Is(err, conflicts.ErrResourceNotFound):
		return ErrResourceNotFound
	case errors.Is(err, conflicts.ErrInvalidInterval):
		return ErrInvalidInterval
	case errors.Is(err, conflicts.ErrBlockedPeriodConflict):
		return ErrBlockedPeriodConflict
	case errors.Is(err, conflicts.ErrReservationConflict):
		return ErrReservationConflict
	default:
		return fmt.Errorf("%w: conflict check failed: %w", ErrInternal, err)
	}
}
