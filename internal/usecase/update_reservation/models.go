package update_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
)

// Request модель запроса на перенос бронирования.
// Nil-поля означают "оставить как есть" (частичное обновление).
type Request struct {
	ReservationID uuid.UUID
	CallerID      uuid.UUID // вызывающий пользователь (из заголовка аутентификации)
	StartTime     *time.Time
	EndTime       *time.Time
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	UserID     uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	TotalPrice float64
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// fromDomain конвертирует domain модель в response
func fromDomain(r *domain.Reservation) *Response {
	return &Response{
		ID:         r.ID,
		ResourceID: r.ResourceID,
		UserID:     r.UserID,
		StartTime:  r.Period.Start,
		EndTime:    r.Period.End,
		TotalPrice: r.TotalPrice,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
