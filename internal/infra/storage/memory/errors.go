package memory

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrOfficeNotFound возвращается, когда офис не найден
	ErrOfficeNotFound = fmt.Errorf("memory.storage: office %w", domain.ErrNotFound)

	// ErrOfficeExists возвращается при создании офиса с занятым id
	ErrOfficeExists = fmt.Errorf("memory.storage: office already exists: %w", domain.ErrValidation)

	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = fmt.Errorf("memory.storage: request %w", domain.ErrNotFound)

	// ErrRequestExists возвращается при повторном создании заявки с тем же id
	ErrRequestExists = fmt.Errorf("memory.storage: request already exists: %w", domain.ErrValidation)

	// ErrPoolExhausted возвращается, когда в пуле нет свободных мест
	ErrPoolExhausted = fmt.Errorf("memory.storage: %w", domain.ErrExhausted)

	// ErrCapacityBelowOccupied возвращается при попытке уменьшить ёмкость ниже числа занятых мест
	ErrCapacityBelowOccupied = fmt.Errorf("memory.storage: capacity below occupied: %w", domain.ErrValidation)
)
