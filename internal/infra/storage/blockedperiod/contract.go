package blockedperiod

import (
	"github.com/rodrigocvmd/pgra-backend/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
