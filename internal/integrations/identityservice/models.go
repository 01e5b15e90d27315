package identityservice

import "github.com/google/uuid"

// User учетные данные пользователя из identity-сервиса.
// Сервис бронирования потребляет только {id, role}; аутентификацию
// (выдачу и проверку токенов) identity-сервис выполняет сам.
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"` // USER, OWNER или ADMIN
}

// ErrorResponse модель ошибки от identity-сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
