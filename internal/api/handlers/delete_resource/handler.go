package delete_resource

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rodrigocvmd/pgra-backend/internal/api/handlers"
	"github.com/rodrigocvmd/pgra-backend/internal/api/middleware"
	"github.com/rodrigocvmd/pgra-backend/internal/service/resources"
)

const (
	msgUnauthorized          = "требуется аутентификация"
	msgInvalidResourceID     = "некорректный ID ресурса"
	msgNotFound              = "ресурс не найден"
	msgUserNotFound          = "пользователь не найден"
	msgForbidden             = "доступ запрещен"
	msgHasActiveReservations = "у ресурса есть активные бронирования"
	msgHasReservationHistory = "у ресурса есть история бронирований"
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

// Handle DELETE /api/v1/resources/{resourceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем resourceId из URL
	vars := mux.Vars(r)
	resourceID, err := uuid.Parse(vars["resourceId"])
	if err != nil {
		h.logger.Warn("DELETE /resources/{id} - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	if err := h.service.Delete(r.Context(), resourceID, callerID); err != nil {
		switch {
		case errors.Is(err, resources.ErrResourceNotFound):
			h.logger.Warn("DELETE /resources/{id} - Resource not found: resource_id=%s", resourceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, resources.ErrUserNotFound):
			h.logger.Warn("DELETE /resources/{id} - Caller not found: caller_id=%s", callerID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, resources.ErrAccessDenied):
			h.logger.Warn("DELETE /resources/{id} - Access denied: resource_id=%s, caller_id=%s",
				resourceID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, resources.ErrHasActiveReservations):
			h.logger.Warn("DELETE /resources/{id} - Resource has active reservations: resource_id=%s", resourceID)
			handlers.RespondConflict(w, msgHasActiveReservations)

		case errors.Is(err, resources.ErrHasReservationHistory):
			h.logger.Warn("DELETE /resources/{id} - Resource has reservation history: resource_id=%s", resourceID)
			handlers.RespondConflict(w, msgHasReservationHistory)

		default:
			h.logger.Error("DELETE /resources/{id} - Failed to delete resource: resource_id=%s, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /resources/{id} - Resource deleted successfully: resource_id=%s, caller_id=%s",
		resourceID, callerID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
