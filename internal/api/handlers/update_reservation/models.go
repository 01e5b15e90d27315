package update_reservation

import (
	"time"

	"github.com/google/uuid"

	updateReservation "github.com/rodrigocvmd/pgra-backend/internal/usecase/update_reservation"
)

// UpdateReservationRequest HTTP request model.
// Омитнутые поля остаются без изменений (частичное обновление).
type UpdateReservationRequest struct {
	StartTime *string `json:"startTime,omitempty"` // "2026-07-01T10:00:00Z"
	EndTime   *string `json:"endTime,omitempty"`   // "2026-07-01T12:00:00Z"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID         uuid.UUID `json:"id"`
	ResourceID uuid.UUID `json:"resourceId"`
	UserID     uuid.UUID `json:"userId"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status"`
	CreatedAt  string    `json:"createdAt"`
	UpdatedAt  string    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(reservationID, callerID uuid.UUID) (*updateReservation.Request, error) {
	req := &updateReservation.Request{
		ReservationID: reservationID,
		CallerID:      callerID,
	}

	if r.StartTime != nil {
		startTime, err := time.Parse(time.RFC3339, *r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	if r.EndTime != nil {
		endTime, err := time.Parse(time.RFC3339, *r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &endTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:         resp.ID,
		ResourceID: resp.ResourceID,
		UserID:     resp.UserID,
		StartTime:  resp.StartTime.Format(time.RFC3339),
		EndTime:    resp.EndTime.Format(time.RFC3339),
		TotalPrice: resp.TotalPrice,
		Status:     resp.Status,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
