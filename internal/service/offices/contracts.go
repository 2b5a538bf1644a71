package offices

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// OfficeRepository интерфейс репозитория офисов
type OfficeRepository interface {
	Create(ctx context.Context, office *domain.Office) (*domain.Office, error)
	GetByID(ctx context.Context, id string) (*domain.Office, error)
	List(ctx context.Context) ([]domain.Office, error)
}

// PoolRepository интерфейс Capacity Registry (чтение)
type PoolRepository interface {
	Availability(ctx context.Context, key domain.PoolKey) (*domain.SlotPool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
