package middleware

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// TokenParser проверка токена администратора
type TokenParser interface {
	ParseToken(token string) (*domain.Admin, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
