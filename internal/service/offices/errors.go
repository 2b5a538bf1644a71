package offices

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных. Детали - в *domain.ValidationError.
	ErrInvalidInput = errors.New("offices.service: invalid input")

	// ErrOfficeNotFound возвращается, когда офис не найден
	ErrOfficeNotFound = fmt.Errorf("offices.service: office %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("offices.service: internal error")
)
