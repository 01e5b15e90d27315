package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrResourceNotFound возвращается, когда ресурс бронирования не найден
	ErrResourceNotFound = errors.New("resource not found")

	// ErrUserNotFound возвращается, когда вызывающий пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrAccessDenied возвращается, когда у вызывающего нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotConfirm возвращается, когда бронирование нельзя подтвердить
	// из текущего статуса (подтверждается только pending)
	ErrCannotConfirm = errors.New("reservation cannot be confirmed")

	// ErrCannotCancel возвращается, когда бронирование нельзя отменить.
	// Повторная отмена уже отмененного бронирования - ошибка, а не no-op.
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
