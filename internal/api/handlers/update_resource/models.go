package update_resource

import (
	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/service/resources/models"
)

// UpdateResourceRequest HTTP request model.
// Омитнутые поля остаются без изменений (частичное обновление).
type UpdateResourceRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	ImageURL     *string  `json:"imageUrl,omitempty"`
	PricePerHour *float64 `json:"pricePerHour,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateResourceRequest) ToServiceRequest(callerID uuid.UUID) *models.UpdateResourceRequest {
	return &models.UpdateResourceRequest{
		CallerID:     callerID,
		Name:         r.Name,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
		PricePerHour: r.PricePerHour,
	}
}
