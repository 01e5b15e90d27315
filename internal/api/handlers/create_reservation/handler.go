package create_reservation

import (
	"errors"
	"net/http"

	"github.com/rodrigocvmd/pgra-backend/internal/api/handlers"
	"github.com/rodrigocvmd/pgra-backend/internal/api/middleware"
	createReservation "github.com/rodrigocvmd/pgra-backend/internal/usecase/create_reservation"
)

const (
	msgUnauthorized          = "требуется аутентификация"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidTimeFormat     = "некорректный формат времени, ожидается RFC3339"
	msgResourceNotFound      = "ресурс не найден"
	msgUserNotFound          = "пользователь не найден"
	msgInvalidInterval       = "конец интервала должен быть позже начала"
	msgIntervalInPast        = "интервал начинается в прошлом"
	msgBlockedPeriodConflict = "интервал пересекается с заблокированным периодом"
	msgReservationConflict   = "интервал пересекается с существующим бронированием"
	msgInvalidInput          = "некорректные входные данные"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeFormat)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrResourceNotFound):
			h.logger.Warn("POST /reservations - Resource not found: resource_id=%s, user_id=%s",
				req.ResourceID, userID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createReservation.ErrUserNotFound):
			h.logger.Warn("POST /reservations - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createReservation.ErrInvalidInterval):
			h.logger.Warn("POST /reservations - Invalid interval: resource_id=%s, user_id=%s",
				req.ResourceID, userID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createReservation.ErrIntervalInPast):
			h.logger.Warn("POST /reservations - Interval in the past: resource_id=%s, user_id=%s",
				req.ResourceID, userID)
			handlers.RespondBadRequest(w, msgIntervalInPast)

		case errors.Is(err, createReservation.ErrBlockedPeriodConflict):
			h.logger.Warn("POST /reservations - Blocked period conflict: resource_id=%s, user_id=%s",
				req.ResourceID, userID)
			handlers.RespondConflict(w, msgBlockedPeriodConflict)

		case errors.Is(err, createReservation.ErrReservationConflict):
			h.logger.Warn("POST /reservations - Reservation conflict: resource_id=%s, user_id=%s",
				req.ResourceID, userID)
			handlers.RespondConflict(w, msgReservationConflict)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: resource_id=%s, user_id=%s, error=%v",
				req.ResourceID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%s, resource_id=%s, user_id=%s",
		result.ID, result.ResourceID, userID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
