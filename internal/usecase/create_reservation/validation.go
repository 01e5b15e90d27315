package create_reservation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == uuid.Nil {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.ResourceID == uuid.Nil {
		return fmt.Errorf("%w: resourceID is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if _, err := domain.NewInterval(req.StartTime, req.EndTime); err != nil {
		return ErrInvalidInterval
	}

	return nil
}

// validateNotInPast проверяет, что интервал не начинается в прошлом.
// "Сейчас" передается параметром (инъекция TimeProvider), что делает
// проверку детерминированной в тестах.
func validateNotInPast(period domain.Interval, now time.Time) error {
	if period.Start.Before(now) {
		return ErrIntervalInPast
	}
	return nil
}
