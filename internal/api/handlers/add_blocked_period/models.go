package add_blocked_period

import (
	"time"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/service/availability/models"
)

// AddBlockedPeriodRequest HTTP request model
type AddBlockedPeriodRequest struct {
	BlockedStart string `json:"blockedStart"` // "2026-07-01T00:00:00Z"
	BlockedEnd   string `json:"blockedEnd"`   // "2026-07-08T00:00:00Z"
	Reason       string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AddBlockedPeriodRequest) ToServiceRequest(resourceID, callerID uuid.UUID) (*models.AddBlockedPeriodRequest, error) {
	blockedStart, err := time.Parse(time.RFC3339, r.BlockedStart)
	if err != nil {
		return nil, err
	}

	blockedEnd, err := time.Parse(time.RFC3339, r.BlockedEnd)
	if err != nil {
		return nil, err
	}

	return &models.AddBlockedPeriodRequest{
		ResourceID:   resourceID,
		CallerID:     callerID,
		BlockedStart: blockedStart,
		BlockedEnd:   blockedEnd,
		Reason:       r.Reason,
	}, nil
}
