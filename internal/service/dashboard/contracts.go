package dashboard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// RequestRepository интерфейс Request Ledger (счётчики)
type RequestRepository interface {
	CountByStatus(ctx context.Context) (domain.StatusCounts, error)
}

// OfficeRepository интерфейс репозитория офисов
type OfficeRepository interface {
	List(ctx context.Context) ([]domain.Office, error)
}

// PoolRepository интерфейс Capacity Registry (чтение)
type PoolRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]domain.SlotPool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
