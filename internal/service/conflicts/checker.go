package conflicts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
	resourceRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/resource"
)

// Checker проверяет кандидатный интервал на конфликты с заблокированными
// периодами и активными бронированиями ресурса.
//
// Проверка только читает данные; вызывающий код обязан выполнить её и
// последующую запись в одной SERIALIZABLE транзакции (через TransactionManager),
// иначе два конкурентных запроса могут пройти проверку одновременно и оба
// записаться, нарушив инвариант непересечения.
type Checker struct {
	resourceRepo      ResourceRepository
	reservationRepo   ReservationRepository
	blockedPeriodRepo BlockedPeriodRepository
	logger            Logger
}

// NewChecker создает новый экземпляр проверки конфликтов
func NewChecker(
	resourceRepo ResourceRepository,
	reservationRepo ReservationRepository,
	blockedPeriodRepo BlockedPeriodRepository,
	logger Logger,
) *Checker {
	return &Checker{
		resourceRepo:      resourceRepo,
		reservationRepo:   reservationRepo,
		blockedPeriodRepo: blockedPeriodRepo,
		logger:            logger,
	}
}

// Check проверяет, свободен ли интервал [period.Start, period.End) ресурса.
// excludeReservationID исключает собственное бронирование при переносе.
//
// Порядок проверок (периоды, затем бронирования) влияет только на
// специфичность ошибки: при пересечении и с периодом, и с бронированием
// вернется ErrBlockedPeriodConflict.
func (c *Checker) Check(ctx context.Context, resourceID uuid.UUID, period domain.Interval, excludeReservationID *uuid.UUID) error {
	// 1. Валидация интервала
	if err := period.Validate(); err != nil {
		return ErrInvalidInterval
	}

	// 2. Ресурс должен существовать
	if _, err := c.resourceRepo.GetByID(ctx, resourceID); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return fmt.Errorf("%w: Check - failed to get resource: %w", ErrInternal, err)
	}

	// 3. Пересечение с заблокированными периодами
	blocked, err := c.blockedPeriodRepo.FindOverlapping(ctx, resourceID, period)
	if err != nil {
		return fmt.Errorf("%w: Check - failed to query blocked periods: %w", ErrInternal, err)
	}
	if len(blocked) > 0 {
		c.logger.Warn("Check: resource=%s interval overlaps blocked period id=%s (reason=%q)",
			resourceID, blocked[0].ID, blocked[0].Reason)
		return ErrBlockedPeriodConflict
	}

	// 4. Пересечение с активными бронированиями (кроме собственного)
	overlapping, err := c.reservationRepo.FindOverlapping(ctx, resourceID, period, excludeReservationID)
	if err != nil {
		return fmt.Errorf("%w: Check - failed to query reservations: %w", ErrInternal, err)
	}
	if len(overlapping) > 0 {
		c.logger.Warn("Check: resource=%s interval overlaps reservation id=%s",
			resourceID, overlapping[0].ID)
		return ErrReservationConflict
	}

	return nil
}
