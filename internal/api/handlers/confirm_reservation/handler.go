package confirm_reservation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rodrigocvmd/pgra-backend/internal/api/handlers"
	"github.com/rodrigocvmd/pgra-backend/internal/api/middleware"
	"github.com/rodrigocvmd/pgra-backend/internal/service/reservations"
)

const (
	msgUnauthorized         = "требуется аутентификация"
	msgInvalidReservationID = "некорректный ID бронирования"
	msgNotFound             = "бронирование не найдено"
	msgUserNotFound         = "пользователь не найден"
	msgForbidden            = "доступ запрещен"
	msgCannotConfirm        = "бронирование в текущем статусе нельзя подтвердить"
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

// Handle PATCH /api/v1/reservations/{reservationId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем reservationId из URL
	vars := mux.Vars(r)
	reservationID, err := uuid.Parse(vars["reservationId"])
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/confirm - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.service.Confirm(r.Context(), reservationID, callerID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Reservation not found: reservation_id=%s",
				reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrUserNotFound):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Caller not found: caller_id=%s", callerID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Access denied: reservation_id=%s, caller_id=%s",
				reservationID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrCannotConfirm):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Cannot confirm: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgCannotConfirm)

		default:
			h.logger.Error("PATCH /reservations/{id}/confirm - Failed to confirm reservation: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/confirm - Reservation confirmed successfully: reservation_id=%s, caller_id=%s",
		reservationID, callerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
