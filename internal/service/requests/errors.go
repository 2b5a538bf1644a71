package requests

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах запроса. Детали - в *domain.ValidationError.
	ErrInvalidInput = errors.New("requests.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("requests.service: internal error")
)
