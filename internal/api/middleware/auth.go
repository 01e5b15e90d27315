package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/api/handlers"
)

// UserIDHeader заголовок с идентификатором вызывающего пользователя.
// Аутентификация выполняется выше по стеку (gateway); сервис доверяет заголовку.
const UserIDHeader = "X-User-ID"

type ctxKey string

const userIDKey ctxKey = "userID"

const (
	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный идентификатор пользователя"
)

// Auth извлекает X-User-ID из заголовка и кладет его в контекст запроса.
// Запросы без валидного UUID отклоняются с 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext возвращает идентификатор пользователя, положенный Auth
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}
