package update_reservation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rodrigocvmd/pgra-backend/internal/api/handlers"
	"github.com/rodrigocvmd/pgra-backend/internal/api/middleware"
	updateReservation "github.com/rodrigocvmd/pgra-backend/internal/usecase/update_reservation"
)

const (
	msgUnauthorized          = "требуется аутентификация"
	msgInvalidReservationID  = "некорректный ID бронирования"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidTimeFormat     = "некорректный формат времени, ожидается RFC3339"
	msgNotFound              = "бронирование не найдено"
	msgUserNotFound          = "пользователь не найден"
	msgForbidden             = "доступ запрещен"
	msgCannotUpdate          = "бронирование в текущем статусе нельзя перенести"
	msgInvalidInterval       = "конец интервала должен быть позже начала"
	msgIntervalInPast        = "интервал начинается в прошлом"
	msgBlockedPeriodConflict = "интервал пересекается с заблокированным периодом"
	msgReservationConflict   = "интервал пересекается с существующим бронированием"
	msgInvalidInput          = "некорректные входные данные"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}
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
		h.logger.Warn("PATCH /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID, callerID)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateReservation.ErrUserNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Caller not found: caller_id=%s", callerID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, updateReservation.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id} - Access denied: reservation_id=%s, caller_id=%s",
				reservationID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateReservation.ErrCannotUpdate):
			h.logger.Warn("PATCH /reservations/{id} - Cannot update: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgCannotUpdate)

		case errors.Is(err, updateReservation.ErrInvalidInterval):
			h.logger.Warn("PATCH /reservations/{id} - Invalid interval: reservation_id=%s", reservationID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, updateReservation.ErrIntervalInPast):
			h.logger.Warn("PATCH /reservations/{id} - Interval in the past: reservation_id=%s", reservationID)
			handlers.RespondBadRequest(w, msgIntervalInPast)

		case errors.Is(err, updateReservation.ErrBlockedPeriodConflict):
			h.logger.Warn("PATCH /reservations/{id} - Blocked period conflict: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgBlockedPeriodConflict)

		case errors.Is(err, updateReservation.ErrReservationConflict):
			h.logger.Warn("PATCH /reservations/{id} - Reservation conflict: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgReservationConflict)

		case errors.Is(err, updateReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id} - Invalid input: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to update reservation: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /reservations/{id} - Reservation updated successfully: reservation_id=%s, caller_id=%s",
		reservationID, callerID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
