package conflicts

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не существует
	ErrResourceNotFound = errors.New("conflicts: resource not found")

	// ErrInvalidInterval возвращается, когда конец интервала не позже начала
	ErrInvalidInterval = errors.New("conflicts: interval end must be after start")

	// ErrBlockedPeriodConflict возвращается, когда интервал пересекает
	// заблокированный владельцем период
	ErrBlockedPeriodConflict = errors.New("conflicts: interval overlaps a blocked period")

	// ErrReservationConflict возвращается, когда интервал пересекает
	// существующее активное бронирование
	ErrReservationConflict = errors.New("conflicts: interval overlaps an active reservation")

	// ErrInternal возвращается при внутренних ошибках проверки
	ErrInternal = errors.New("conflicts: internal error")
)
