package list_resources

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/api/handlers"
	"github.com/rodrigocvmd/pgra-backend/internal/service/resources/models"
)

const (
	msgInvalidOwnerID = "некорректный ID владельца"
)

type Handler struct {
	service ResourceService
	logger  Logger
}

func NewHandler(service ResourceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources
// Опциональный query параметр ownerId фильтрует по владельцу.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerIDRaw := r.URL.Query().Get("ownerId")

	var result *models.ResourceListResponse
	var err error

	if ownerIDRaw != "" {
		ownerID, parseErr := uuid.Parse(ownerIDRaw)
		if parseErr != nil {
			h.logger.Warn("GET /resources - Invalid owner ID: %v", parseErr)
			handlers.RespondBadRequest(w, msgInvalidOwnerID)
			return
		}
		result, err = h.service.GetMyResources(r.Context(), ownerID)
	} else {
		result, err = h.service.List(r.Context())
	}

	if err != nil {
		h.logger.Error("GET /resources - Failed to list resources: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /resources - Resources retrieved successfully: count=%d", len(result.Resources))
	handlers.RespondJSON(w, http.StatusOK, result)
}
