package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
)

// Request модели

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID   uuid.UUID
	CallerID uuid.UUID
	Status   *string // фильтр по статусу (опционально)
}

// GetOwnerReservationsRequest запрос на получение бронирований
// на всех ресурсах владельца
type GetOwnerReservationsRequest struct {
	OwnerID  uuid.UUID
	CallerID uuid.UUID
	Status   *string // фильтр по статусу (опционально)
}

// Response модели

// ReservationResponse ответ с данными бронирования.
// Времена сериализуются в ISO-8601, цена - с точностью до копеек.
type ReservationResponse struct {
	ID         uuid.UUID `json:"id"`
	ResourceID uuid.UUID `json:"resourceId"`
	UserID     uuid.UUID `json:"userId"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status"`

	CancelledAt *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:         r.ID,
		ResourceID: r.ResourceID,
		UserID:     r.UserID,
		StartTime:  r.Period.Start.Format(time.RFC3339),
		EndTime:    r.Period.End.Format(time.RFC3339),
		TotalPrice: domain.RoundPrice(r.TotalPrice),
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if converted := FromDomainReservation(r); converted != nil {
			resp.Reservations = append(resp.Reservations, *converted)
		}
	}

	return resp
}
