package add_blocked_period

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rodrigocvmd/pgra-backend/internal/api/handlers"
	"github.com/rodrigocvmd/pgra-backend/internal/api/middleware"
	"github.com/rodrigocvmd/pgra-backend/internal/service/availability"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidResourceID  = "некорректный ID ресурса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeFormat  = "некорректный формат времени, ожидается RFC3339"
	msgResourceNotFound   = "ресурс не найден"
	msgUserNotFound       = "пользователь не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidInterval    = "конец периода должен быть позже начала"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/resources/{resourceId}/blocked-periods
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
		h.logger.Warn("POST /resources/{id}/blocked-periods - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	var req AddBlockedPeriodRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /resources/{id}/blocked-periods - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(resourceID, callerID)
	if err != nil {
		h.logger.Warn("POST /resources/{id}/blocked-periods - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeFormat)
		return
	}

	result, err := h.service.AddBlockedPeriod(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrResourceNotFound):
			h.logger.Warn("POST /resources/{id}/blocked-periods - Resource not found: resource_id=%s",
				resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, availability.ErrUserNotFound):
			h.logger.Warn("POST /resources/{id}/blocked-periods - Caller not found: caller_id=%s", callerID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /resources/{id}/blocked-periods - Access denied: resource_id=%s, caller_id=%s",
				resourceID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidInterval):
			h.logger.Warn("POST /resources/{id}/blocked-periods - Invalid interval: resource_id=%s", resourceID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /resources/{id}/blocked-periods - Invalid input: resource_id=%s, error=%v",
				resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /resources/{id}/blocked-periods - Failed to add blocked period: resource_id=%s, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /resources/{id}/blocked-periods - Blocked period added successfully: blocked_period_id=%s, resource_id=%s",
		result.ID, resourceID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
