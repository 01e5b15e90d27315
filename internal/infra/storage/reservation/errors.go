package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrIntervalTaken возвращается, когда exclusion constraint БД отклонил
	// пересекающийся интервал (последняя линия защиты инварианта непересечения)
	ErrIntervalTaken = errors.New("reservation.repository: interval overlaps an active reservation")

	// ErrStatusNotMatched возвращается, когда UPDATE со сторожевым условием
	// по статусу не затронул ни одной строки: статус изменился конкурентно
	ErrStatusNotMatched = errors.New("reservation.repository: reservation is not in the expected status")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
