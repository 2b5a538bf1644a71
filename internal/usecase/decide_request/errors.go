package decide_request

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных. Детали - в *domain.ValidationError.
	ErrInvalidInput = errors.New("decide_request: invalid input")

	// ErrRequestNotFound возвращается, когда заявки с таким id нет
	ErrRequestNotFound = fmt.Errorf("decide_request: request %w", domain.ErrNotFound)

	// ErrInvalidTransition возвращается, когда по заявке уже принято окончательное решение
	ErrInvalidTransition = fmt.Errorf("decide_request: %w", domain.ErrInvalidTransition)

	// ErrExhausted возвращается, когда одобрить нельзя - свободных мест нет. Заявка не меняется.
	ErrExhausted = fmt.Errorf("decide_request: %w", domain.ErrExhausted)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("decide_request: internal error")
)
