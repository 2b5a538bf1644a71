package update_pool_capacity

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/promote_waitlist"
)

// PoolRepository интерфейс Capacity Registry
type PoolRepository interface {
	SetCapacity(ctx context.Context, key domain.PoolKey, capacity int) (*domain.SlotPool, int, error)
	Availability(ctx context.Context, key domain.PoolKey) (*domain.SlotPool, error)
}

// Promoter продвижение листа ожидания пула
type Promoter interface {
	Execute(ctx context.Context, req *promote_waitlist.Request) (*promote_waitlist.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
