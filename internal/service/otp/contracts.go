package otp

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	otpStore "github.com/m04kA/SMC-ParkingService/internal/infra/storage/otp"
)

// CodeStore хранилище выданных кодов
type CodeStore interface {
	Save(ctx context.Context, email string, entry otpStore.Entry, ttl time.Duration) error
	Get(ctx context.Context, email string) (*otpStore.Entry, error)
	Delete(ctx context.Context, email string) error
}

// Notifier доставляет код получателю
type Notifier interface {
	Notify(ctx context.Context, event domain.Event) error
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
