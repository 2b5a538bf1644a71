package submit_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	submitRequest "github.com/m04kA/SMC-ParkingService/internal/usecase/submit_request"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные заявки"
	msgOfficeNotFound     = "офис не найден"
)

type Handler struct {
	useCase SubmitRequestUseCase
	logger  Logger
}

func NewHandler(useCase SubmitRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/parking-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /parking-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /parking-requests - Invalid parking_date %q: %v", req.ParkingDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitRequest.ErrInvalidInput):
			h.logger.Warn("POST /parking-requests - Validation failed: emp_id=%s, error=%v", req.EmployeeID, err)
			handlers.RespondValidation(w, err, msgInvalidInput)

		case errors.Is(err, submitRequest.ErrOfficeNotFound):
			h.logger.Warn("POST /parking-requests - Office not found: office_id=%s", req.OfficeID)
			handlers.RespondNotFound(w, msgOfficeNotFound)

		default:
			h.logger.Error("POST /parking-requests - Failed to submit request: emp_id=%s, error=%v", req.EmployeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /parking-requests - Request submitted: id=%s, emp_id=%s, status=%s",
		response.ID, req.EmployeeID, response.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
