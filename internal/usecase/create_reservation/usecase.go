package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
	reservationRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/reservation"
	resourceRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/resource"
	identityClient "github.com/rodrigocvmd/pgra-backend/internal/integrations/identityservice"
	"github.com/rodrigocvmd/pgra-backend/internal/service/conflicts"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования.
// Проверка конфликтов и вставка выполняются в одной SERIALIZABLE транзакции,
// что сериализует конкурентные check-then-write последовательности по ресурсу.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%s, resource=%s, start=%s, end=%s",
		req.UserID, req.ResourceID, req.StartTime.Format(timeFormat), req.EndTime.Format(timeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	period := domain.Interval{Start: req.StartTime, End: req.EndTime}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Бронирование в прошлом не принимается
	if err := validateNotInPast(period, now); err != nil {
		uc.logger.Warn("CreateReservation: interval in the past: user=%s, resource=%s",
			req.UserID, req.ResourceID)
		return nil, err
	}

	// 4. Проверяем, что бронирующий пользователь существует
	if _, err := uc.identityClient.GetUser(ctx, req.UserID); err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			uc.logger.Warn("CreateReservation: user id=%s not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateReservation: failed to get user id=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	var result *domain.Reservation

	// 5. Проверка конфликтов и запись в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем ресурс (внутри транзакции строка блокируется FOR UPDATE)
		resource, err := uc.resourceRepo.GetByID(txCtx, req.ResourceID)
		if err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				uc.logger.Warn("CreateReservation: resource id=%s not found", req.ResourceID)
				return ErrResourceNotFound
			}
			uc.logger.Error("CreateReservation: failed to get resource id=%s: %v", req.ResourceID, err)
			return fmt.Errorf("%w: failed to get resource: %w", ErrInternal, err)
		}

		// 5.2. Проверяем интервал на конфликты
		if err := uc.checker.Check(txCtx, req.ResourceID, period, nil); err != nil {
			return mapConflictError(err)
		}

		// 5.3. Считаем цену: полная точность в вычислении,
		// округление до копеек только при сохранении
		price, err := domain.ComputePrice(resource.PricePerHour, period)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to compute price: %v", err)
			return fmt.Errorf("%w: failed to compute price: %v", ErrInternal, err)
		}

		// 5.4. Создаем бронирование в статусе pending
		reservation := &domain.Reservation{
			ResourceID: req.ResourceID,
			UserID:     req.UserID,
			Period:     period,
			TotalPrice: domain.RoundPrice(price),
			Status:     domain.StatusPending,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			// Exclusion constraint БД - последняя линия защиты инварианта
			// непересечения: конкурентная вставка проиграла гонку
			if errors.Is(err, reservationRepo.ErrIntervalTaken) {
				uc.logger.Warn("CreateReservation: interval taken at insert: user=%s, resource=%s",
					req.UserID, req.ResourceID)
				return ErrReservationConflict
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%s, price=%.2f",
		result.ID, result.TotalPrice)

	return fromDomain(result), nil
}

const timeFormat = "2006-01-02T15:04:05Z07:00"

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
