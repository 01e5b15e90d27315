package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
)

// Request модели

// CreateResourceRequest запрос на создание ресурса
type CreateResourceRequest struct {
	OwnerID      uuid.UUID
	Name         string
	Description  *string
	ImageURL     *string
	PricePerHour float64
}

// UpdateResourceRequest запрос на частичное обновление ресурса
type UpdateResourceRequest struct {
	CallerID     uuid.UUID
	Name         *string
	Description  *string
	ImageURL     *string
	PricePerHour *float64
}

// Response модели

// ResourceResponse ответ с данными ресурса
type ResourceResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"ownerId"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	PricePerHour float64   `json:"pricePerHour"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ResourceListResponse ответ со списком ресурсов
type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
}

// Методы конвертации

// FromDomainResource конвертирует domain модель в DTO
func FromDomainResource(r *domain.Resource) *ResourceResponse {
	if r == nil {
		return nil
	}

	return &ResourceResponse{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		Name:         r.Name,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
		PricePerHour: r.PricePerHour,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// FromDomainResourceList конвертирует список domain моделей в DTO
func FromDomainResourceList(resources []*domain.Resource) *ResourceListResponse {
	resp := &ResourceListResponse{
		Resources: make([]ResourceResponse, 0, len(resources)),
	}

	for _, r := range resources {
		if converted := FromDomainResource(r); converted != nil {
			resp.Resources = append(resp.Resources, *converted)
		}
	}

	return resp
}
