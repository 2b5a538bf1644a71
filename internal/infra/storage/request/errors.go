package request

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = fmt.Errorf("request.repository: %w", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("request.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("request.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("request.repository: failed to scan row")
)

// codeInvalidTextRepresentation SQLSTATE 22P02, например "invalid input syntax for type uuid"
const codeInvalidTextRepresentation = "22P02"
