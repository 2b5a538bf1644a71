package pool

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrPoolExhausted возвращается, когда в пуле нет свободных мест
	ErrPoolExhausted = fmt.Errorf("pool.repository: %w", domain.ErrExhausted)

	// ErrOfficeNotFound возвращается, когда пул нельзя создать, потому что офиса нет
	ErrOfficeNotFound = fmt.Errorf("pool.repository: office %w", domain.ErrNotFound)

	// ErrCapacityBelowOccupied возвращается при попытке уменьшить ёмкость ниже числа занятых мест
	ErrCapacityBelowOccupied = fmt.Errorf("pool.repository: capacity below occupied: %w", domain.ErrValidation)

	// ErrTransactionRequired возвращается, если резервирование вызвано вне транзакции
	ErrTransactionRequired = errors.New("pool.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("pool.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("pool.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("pool.repository: failed to scan row")
)
