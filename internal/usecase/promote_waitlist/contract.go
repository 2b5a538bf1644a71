package promote_waitlist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// RequestRepository интерфейс Request Ledger
type RequestRepository interface {
	ListWaitlist(ctx context.Context, key domain.PoolKey) ([]domain.ParkingRequest, error)
	GetForUpdate(ctx context.Context, id string) (*domain.ParkingRequest, error)
	UpdateDecision(ctx context.Context, d domain.Decision) error
}

// PoolRepository интерфейс Capacity Registry
type PoolRepository interface {
	Reserve(ctx context.Context, key domain.PoolKey, requestID string) (*domain.SlotAssignment, error)
	Release(ctx context.Context, key domain.PoolKey, requestID string) (bool, error)
	Availability(ctx context.Context, key domain.PoolKey) (*domain.SlotPool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier получатель событий после фиксации транзакции
type Notifier interface {
	Notify(ctx context.Context, event domain.Event) error
}

// Metrics бизнес-метрики листа ожидания
type Metrics interface {
	ObservePromotion()
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
