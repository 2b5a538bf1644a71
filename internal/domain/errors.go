package domain

import (
	"errors"
	"fmt"
)

// Классы ошибок движка. Пакеты оборачивают их своими sentinel-ошибками,
// обработчики HTTP сопоставляют класс с кодом ответа через errors.Is.
var (
	// ErrValidation некорректный запрос, ничего не записано
	ErrValidation = errors.New("validation error")

	// ErrExhausted в пуле нет свободных мест
	ErrExhausted = errors.New("slot pool exhausted")

	// ErrInvalidTransition переход статуса не разрешён таблицей переходов
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotFound запрошенная сущность не существует
	ErrNotFound = errors.New("not found")
)

// ValidationError ошибка валидации с сообщением, которое отдаётся клиенту как есть
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError собирает ValidationError с форматированным сообщением
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
