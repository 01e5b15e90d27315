package create_resource

import (
	"errors"
	"net/http"

	"github.com/rodrigocvmd/pgra-backend/internal/api/handlers"
	"github.com/rodrigocvmd/pgra-backend/internal/api/middleware"
	"github.com/rodrigocvmd/pgra-backend/internal/service/resources"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUserNotFound       = "пользователь не найден"
	msgInvalidInput       = "некорректные входные данные"
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

// Handle POST /api/v1/resources
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /resources - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(ownerID))
	if err != nil {
		switch {
		case errors.Is(err, resources.ErrUserNotFound):
			h.logger.Warn("POST /resources - Owner not found: owner_id=%s", ownerID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, resources.ErrInvalidInput):
			h.logger.Warn("POST /resources - Invalid input: owner_id=%s, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /resources - Failed to create resource: owner_id=%s, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /resources - Resource created successfully: resource_id=%s, owner_id=%s",
		result.ID, ownerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
