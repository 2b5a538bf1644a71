package auth

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных. Детали - в *domain.ValidationError.
	ErrInvalidInput = errors.New("auth.service: invalid input")

	// ErrInvalidCredentials возвращается при неверном email или пароле
	ErrInvalidCredentials = errors.New("auth.service: invalid email or password")

	// ErrInvalidToken возвращается для просроченного, подделанного или нечитаемого токена
	ErrInvalidToken = errors.New("auth.service: invalid token")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth.service: internal error")
)
