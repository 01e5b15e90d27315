package create_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     uuid.UUID // бронирующий пользователь (из заголовка аутентификации)
	ResourceID uuid.UUID // бронируемый ресурс
	StartTime  time.Time // начало интервала (включительно)
	EndTime    time.Time // конец интервала (исключительно)
}

// Response модель ответа с созданным бронированием
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
