package release_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	releaseRequest "github.com/m04kA/SMC-ParkingService/internal/usecase/release_request"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректный ID заявки"
	msgRequestNotFound    = "заявка не найдена"
	msgNotApproved        = "освободить можно только одобренную заявку"
)

type Handler struct {
	useCase ReleaseRequestUseCase
	logger  Logger
}

func NewHandler(useCase ReleaseRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/admin/release-request
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.GetAdmin(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/release-request - Admin not found in context")
		handlers.RespondUnauthorized(w, "")
		return
	}

	var req ReleaseRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/release-request - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &releaseRequest.Request{
		RequestID:  req.RequestID,
		ReleasedBy: admin.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, releaseRequest.ErrInvalidInput):
			h.logger.Warn("POST /admin/release-request - Validation failed: %v", err)
			handlers.RespondValidation(w, err, msgInvalidInput)

		case errors.Is(err, releaseRequest.ErrRequestNotFound):
			h.logger.Warn("POST /admin/release-request - Request not found: request_id=%s", req.RequestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, releaseRequest.ErrInvalidTransition):
			h.logger.Warn("POST /admin/release-request - Request is not approved: request_id=%s", req.RequestID)
			handlers.RespondConflict(w, msgNotApproved)

		default:
			h.logger.Error("POST /admin/release-request - Failed to release: request_id=%s, error=%v", req.RequestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/release-request - Request released: request_id=%s, promoted=%d, by=%s",
		req.RequestID, len(result.Promoted), admin.Email)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
