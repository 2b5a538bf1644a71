package verify_otp

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/otp"
	"github.com/m04kA/SMC-ParkingService/internal/service/otp/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные email или код"
	msgCodeNotFound       = "код не найден или истёк, запросите новый"
	msgInvalidCode        = "неверный код"
	msgTooManyAttempts    = "превышено число попыток, запросите новый код"
)

type Handler struct {
	service OTPService
	logger  Logger
}

func NewHandler(service OTPService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/verify-otp
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /verify-otp - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Verify(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, otp.ErrInvalidInput):
			h.logger.Warn("POST /verify-otp - Validation failed: %v", err)
			handlers.RespondValidation(w, err, msgInvalidInput)

		case errors.Is(err, otp.ErrCodeNotFound), errors.Is(err, otp.ErrCodeExpired):
			h.logger.Warn("POST /verify-otp - Code not found or expired: email=%s", req.Email)
			handlers.RespondBadRequest(w, msgCodeNotFound)

		case errors.Is(err, otp.ErrTooManyAttempts):
			h.logger.Warn("POST /verify-otp - Too many attempts: email=%s", req.Email)
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyAttempts)

		case errors.Is(err, otp.ErrInvalidCode):
			h.logger.Warn("POST /verify-otp - Invalid code: email=%s", req.Email)
			handlers.RespondBadRequest(w, msgInvalidCode)

		default:
			h.logger.Error("POST /verify-otp - Failed to verify OTP: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /verify-otp - OTP verified: email=%s", req.Email)
	handlers.RespondJSON(w, http.StatusOK, result)
}
