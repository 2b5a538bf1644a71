package get_dashboard

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service DashboardService
	logger  Logger
}

func NewHandler(service DashboardService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/admin/dashboard?date=2026-06-02
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var date *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /admin/dashboard - Invalid date %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = &d
	}

	result, err := h.service.Get(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /admin/dashboard - Failed to build dashboard: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/dashboard - Dashboard built: date=%s, total=%d", result.Date, result.TotalRequests)
	handlers.RespondJSON(w, http.StatusOK, result)
}
