package decide_request

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/validation"
)

func validateRequest(req *Request) error {
	if err := validation.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if domain.RequestStatus(req.Status) == domain.StatusRejected &&
		(req.RejectionReason == nil || strings.TrimSpace(*req.RejectionReason) == "") {
		return fmt.Errorf("%w: %w", ErrInvalidInput,
			domain.NewValidationError("rejection_reason", "Rejection Reason is required when rejecting a request"))
	}

	return nil
}
