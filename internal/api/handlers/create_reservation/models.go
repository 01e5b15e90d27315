package create_reservation

import (
	"time"

	"github.com/google/uuid"

	createReservation "github.com/rodrigocvmd/pgra-backend/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ResourceID string `json:"resourceId"`
	StartTime  string `json:"startTime"` // "2026-07-01T10:00:00Z"
	EndTime    string `json:"endTime"`   // "2026-07-01T12:00:00Z"
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
func (r *CreateReservationRequest) ToUseCaseRequest(userID uuid.UUID) (*createReservation.Request, error) {
	resourceID, err := uuid.Parse(r.ResourceID)
	if err != nil {
		return nil, err
	}

	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:     userID,
		ResourceID: resourceID,
		StartTime:  startTime,
		EndTime:    endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
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
