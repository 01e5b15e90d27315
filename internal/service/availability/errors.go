package availability

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("resource not found")

	// ErrBlockedPeriodNotFound возвращается, когда заблокированный период не найден
	ErrBlockedPeriodNotFound = errors.New("blocked period not found")

	// ErrUserNotFound возвращается, когда вызывающий пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrAccessDenied возвращается, когда вызывающий не владелец ресурса
	// и не администратор
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInterval возвращается, когда конец периода не позже начала
	ErrInvalidInterval = errors.New("blocked period end must be after start")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
