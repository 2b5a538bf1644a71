package submit_request

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/validation"
)

// validateRequest проверяет форму заявки и что дата не в прошлом в часовом поясе движка
func validateRequest(req *Request, now time.Time, loc *time.Location) error {
	if err := validation.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if domain.DurationType(req.DurationType) == domain.DurationSingleDay && req.Shift == nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput,
			domain.NewValidationError("shift", "Shift is required for single_day requests"))
	}

	today := domain.NormalizeDate(now.In(loc))
	if domain.NormalizeDate(req.ParkingDate).Before(today) {
		return fmt.Errorf("%w: %w", ErrInvalidInput,
			domain.NewValidationError("parking_date", "Parking Date cannot be in the past"))
	}

	return nil
}
