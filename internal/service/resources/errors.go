package resources

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("resource not found")

	// ErrUserNotFound возвращается, когда вызывающий пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrAccessDenied возвращается, когда вызывающий не владелец ресурса
	// и не администратор
	ErrAccessDenied = errors.New("access denied")

	// ErrHasActiveReservations возвращается при попытке удалить ресурс
	// с активными (pending/confirmed) бронированиями
	ErrHasActiveReservations = errors.New("resource has active reservations")

	// ErrHasReservationHistory возвращается при попытке удалить ресурс,
	// на который ссылаются отмененные или завершенные бронирования:
	// история бронирований сохраняется вместе с ресурсом
	ErrHasReservationHistory = errors.New("resource has reservation history")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
