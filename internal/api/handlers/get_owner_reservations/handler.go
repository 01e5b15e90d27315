package get_owner_reservations

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rodrigocvmd/pgra-backend/internal/api/handlers"
	"github.com/rodrigocvmd/pgra-backend/internal/api/middleware"
	"github.com/rodrigocvmd/pgra-backend/internal/service/reservations"
	"github.com/rodrigocvmd/pgra-backend/internal/service/reservations/models"
)

const (
	msgUnauthorized   = "требуется аутентификация"
	msgInvalidOwnerID = "некорректный ID владельца"
	msgUserNotFound   = "пользователь не найден"
	msgForbidden      = "доступ запрещен"
	msgInvalidStatus  = "некорректный статус бронирования"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/{ownerId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем ownerId из URL
	vars := mux.Vars(r)
	ownerID, err := uuid.Parse(vars["ownerId"])
	if err != nil {
		h.logger.Warn("GET /owners/{ownerId}/reservations - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	serviceReq := &models.GetOwnerReservationsRequest{
		OwnerID:  ownerID,
		CallerID: callerID,
		Status:   statusPtr,
	}

	result, err := h.service.GetOwnerReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrUserNotFound):
			h.logger.Warn("GET /owners/{ownerId}/reservations - Caller not found: caller_id=%s", callerID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /owners/{ownerId}/reservations - Access denied: owner_id=%s, caller_id=%s",
				ownerID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /owners/{ownerId}/reservations - Invalid status filter: status=%q", status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /owners/{ownerId}/reservations - Failed to get reservations: owner_id=%s, error=%v",
				ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /owners/{ownerId}/reservations - Reservations retrieved successfully: owner_id=%s, count=%d",
		ownerID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
