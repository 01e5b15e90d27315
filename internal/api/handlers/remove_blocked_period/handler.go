package remove_blocked_period

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
	msgUnauthorized         = "требуется аутентификация"
	msgInvalidBlockedPeriod = "некорректный ID заблокированного периода"
	msgNotFound             = "заблокированный период не найден"
	msgUserNotFound         = "пользователь не найден"
	msgForbidden            = "доступ запрещен"
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

// Handle DELETE /api/v1/blocked-periods/{blockedPeriodId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем blockedPeriodId из URL
	vars := mux.Vars(r)
	blockedPeriodID, err := uuid.Parse(vars["blockedPeriodId"])
	if err != nil {
		h.logger.Warn("DELETE /blocked-periods/{id} - Invalid blocked period ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockedPeriod)
		return
	}

	if err := h.service.RemoveBlockedPeriod(r.Context(), blockedPeriodID, callerID); err != nil {
		switch {
		case errors.Is(err, availability.ErrBlockedPeriodNotFound):
			h.logger.Warn("DELETE /blocked-periods/{id} - Blocked period not found: blocked_period_id=%s",
				blockedPeriodID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrResourceNotFound):
			h.logger.Warn("DELETE /blocked-periods/{id} - Resource not found: blocked_period_id=%s",
				blockedPeriodID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrUserNotFound):
			h.logger.Warn("DELETE /blocked-periods/{id} - Caller not found: caller_id=%s", callerID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /blocked-periods/{id} - Access denied: blocked_period_id=%s, caller_id=%s",
				blockedPeriodID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /blocked-periods/{id} - Failed to remove blocked period: blocked_period_id=%s, error=%v",
				blockedPeriodID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /blocked-periods/{id} - Blocked period removed successfully: blocked_period_id=%s, caller_id=%s",
		blockedPeriodID, callerID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
