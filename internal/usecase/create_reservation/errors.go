package create_reservation

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("create_reservation: resource not found")

	// ErrUserNotFound возвращается, когда пользователь не найден в identity-сервисе
	ErrUserNotFound = errors.New("create_reservation: user not found")

	// ErrInvalidInterval возвращается, когда конец интервала не позже начала
	ErrInvalidInterval = errors.New("create_reservation: interval end must be after start")

	// ErrIntervalInPast возвращается, когда начало интервала раньше текущего времени
	ErrIntervalInPast = errors.New("create_reservation: interval starts in the past")

	// ErrBlockedPeriodConflict возвращается, когда интервал пересекает
	// заблокированный период ресурса
	ErrBlockedPeriodConflict = errors.New("create_reservation: interval overlaps a blocked period")

	// ErrReservationConflict возвращается, когда интервал пересекает
	// существующее активное бронирование
	ErrReservationConflict = errors.New("create_reservation: interval overlaps an active reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
