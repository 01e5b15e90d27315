package create_resource

import (
	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/service/resources/models"
)

// CreateResourceRequest HTTP request model
type CreateResourceRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	PricePerHour float64 `json:"pricePerHour"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateResourceRequest) ToServiceRequest(ownerID uuid.UUID) *models.CreateResourceRequest {
	return &models.CreateResourceRequest{
		OwnerID:      ownerID,
		Name:         r.Name,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
		PricePerHour: r.PricePerHour,
	}
}
