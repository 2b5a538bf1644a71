package dashboard

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("dashboard.service: internal error")
)
