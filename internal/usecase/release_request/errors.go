package release_request

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("release_request: invalid input")

	// ErrRequestNotFound возвращается, когда заявки с таким id нет
	ErrRequestNotFound = fmt.Errorf("release_request: request %w", domain.ErrNotFound)

	// ErrInvalidTransition возвращается, когда заявка не одобрена и места не держит
	ErrInvalidTransition = fmt.Errorf("release_request: %w", domain.ErrInvalidTransition)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("release_request: internal error")
)
