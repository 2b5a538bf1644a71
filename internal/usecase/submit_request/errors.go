package submit_request

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных. Детали - в *domain.ValidationError.
	ErrInvalidInput = errors.New("submit_request: invalid input")

	// ErrOfficeNotFound возвращается, когда офис заявки не существует
	ErrOfficeNotFound = fmt.Errorf("submit_request: office %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_request: internal error")
)
