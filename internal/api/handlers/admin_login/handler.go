package admin_login

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/auth"
	"github.com/m04kA/SMC-ParkingService/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные учётные данные"
	msgInvalidCredentials = "неверный email или пароль"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/admin/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			h.logger.Warn("POST /admin/login - Validation failed: %v", err)
			handlers.RespondValidation(w, err, msgInvalidInput)

		case errors.Is(err, auth.ErrInvalidCredentials):
			h.logger.Warn("POST /admin/login - Invalid credentials: email=%s", req.Email)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		default:
			h.logger.Error("POST /admin/login - Failed to login: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/login - Admin logged in: email=%s, role=%s", result.Email, result.Role)
	handlers.RespondJSON(w, http.StatusOK, result)
}
