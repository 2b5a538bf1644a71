package update_pool_capacity

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_pool_capacity: invalid input")

	// ErrOfficeNotFound возвращается, когда офиса пула нет
	ErrOfficeNotFound = fmt.Errorf("update_pool_capacity: office %w", domain.ErrNotFound)

	// ErrBelowOccupied возвращается, если новая ёмкость меньше числа занятых мест
	ErrBelowOccupied = fmt.Errorf("update_pool_capacity: capacity below occupied: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_pool_capacity: internal error")
)
