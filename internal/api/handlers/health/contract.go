package health

import "context"

// Pinger зависимость, без которой сервис не готов принимать трафик
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc адаптер для функций вроде (*sql.DB).PingContext
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
