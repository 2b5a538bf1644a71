package request

import "github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
