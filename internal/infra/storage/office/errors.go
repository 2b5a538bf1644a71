package office

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrOfficeNotFound возвращается, когда офис не найден
	ErrOfficeNotFound = fmt.Errorf("office.repository: %w", domain.ErrNotFound)

	// ErrOfficeExists возвращается при создании офиса с занятым id
	ErrOfficeExists = fmt.Errorf("office.repository: office already exists: %w", domain.ErrValidation)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("office.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("office.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("office.repository: failed to scan row")
)
