package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
)

// Request модели

// AddBlockedPeriodRequest запрос на добавление заблокированного периода
type AddBlockedPeriodRequest struct {
	ResourceID   uuid.UUID
	CallerID     uuid.UUID
	BlockedStart time.Time
	BlockedEnd   time.Time
	Reason       string
}

// Response модели

// BlockedPeriodResponse ответ с данными заблокированного периода
type BlockedPeriodResponse struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resourceId"`
	BlockedStart string    `json:"blockedStart"`
	BlockedEnd   string    `json:"blockedEnd"`
	Reason       string    `json:"reason"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BlockedPeriodListResponse ответ со списком заблокированных периодов
type BlockedPeriodListResponse struct {
	BlockedPeriods []BlockedPeriodResponse `json:"blockedPeriods"`
}

// Методы конвертации

// FromDomainBlockedPeriod конвертирует domain модель в DTO
func FromDomainBlockedPeriod(bp *domain.BlockedPeriod) *BlockedPeriodResponse {
	if bp == nil {
		return nil
	}

	return &BlockedPeriodResponse{
		ID:           bp.ID,
		ResourceID:   bp.ResourceID,
		BlockedStart: bp.Period.Start.Format(time.RFC3339),
		BlockedEnd:   bp.Period.End.Format(time.RFC3339),
		Reason:       bp.Reason,
		CreatedAt:    bp.CreatedAt,
	}
}

// FromDomainBlockedPeriodList конвертирует список domain моделей в DTO
func FromDomainBlockedPeriodList(periods []*domain.BlockedPeriod) *BlockedPeriodListResponse {
	resp := &BlockedPeriodListResponse{
		BlockedPeriods: make([]BlockedPeriodResponse, 0, len(periods)),
	}

	for _, bp := range periods {
		if converted := FromDomainBlockedPeriod(bp); converted != nil {
			resp.BlockedPeriods = append(resp.BlockedPeriods, *converted)
		}
	}

	return resp
}
