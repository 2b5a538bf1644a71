package otp

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных. Детали - в *domain.ValidationError.
	ErrInvalidInput = errors.New("otp.service: invalid input")

	// ErrCodeNotFound возвращается, если код не запрашивали или он уже истёк
	ErrCodeNotFound = fmt.Errorf("otp.service: OTP not found or expired: %w", domain.ErrValidation)

	// ErrCodeExpired возвращается для кода старше срока действия
	ErrCodeExpired = fmt.Errorf("otp.service: OTP expired: %w", domain.ErrValidation)

	// ErrInvalidCode возвращается при неверном коде
	ErrInvalidCode = fmt.Errorf("otp.service: invalid OTP: %w", domain.ErrValidation)

	// ErrTooManyAttempts возвращается, когда попытки ввода исчерпаны. Код удаляется.
	ErrTooManyAttempts = fmt.Errorf("otp.service: too many attempts: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("otp.service: internal error")
)
