package blockedperiod

import "errors"

var (
	// ErrBlockedPeriodNotFound возвращается, когда заблокированный период не найден
	ErrBlockedPeriodNotFound = errors.New("blockedperiod.repository: blocked period not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("blockedperiod.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("blockedperiod.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("blockedperiod.repository: failed to scan row")
)
