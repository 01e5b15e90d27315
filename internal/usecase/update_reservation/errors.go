package update_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrResourceNotFound возвращается, когда ресурс бронирования не найден
	ErrResourceNotFound = errors.New("update_reservation: resource not found")

	// ErrUserNotFound возвращается, когда вызывающий пользователь не найден
	ErrUserNotFound = errors.New("update_reservation: user not found")

	// ErrAccessDenied возвращается, когда у вызывающего нет прав на перенос
	ErrAccessDenied = errors.New("update_reservation: access denied")

	// ErrCannotUpdate возвращается при попытке перенести бронирование
	// в терминальном статусе (cancelled/finalized)
	ErrCannotUpdate = errors.New("update_reservation: reservation cannot be updated")

	// ErrInvalidInterval возвращается, когда конец интервала не позже начала
	ErrInvalidInterval = errors.New("update_reservation: interval end must be after start")

	// ErrIntervalInPast возвращается, когда новый интервал начинается в прошлом
	ErrIntervalInPast = errors.New("update_reservation: interval starts in the past")

	// ErrBlockedPeriodConflict возвращается, когда новый интервал пересекает
	// заблокированный период ресурса
	ErrBlockedPeriodConflict = errors.New("update_reservation: interval overlaps a blocked period")

	// ErrReservationConflict возвращается, когда новый интервал пересекает
	// чужое активное бронирование
	ErrReservationConflict = errors.New("update_reservation: interval overlaps an active reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
