package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Response ответ проверки. Checks заполняется только для readyz.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type Handler struct {
	deps   map[string]Pinger
	logger Logger
}

func NewHandler(deps map[string]Pinger, logger Logger) *Handler {
	return &Handler{
		deps:   deps,
		logger: logger,
	}
}

// Live GET /healthz
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{Status: "ok"})
}

// Ready GET /readyz
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := Response{Status: "ok", Checks: make(map[string]string, len(names))}
	code := http.StatusOK
	for _, name := range names {
		if err := h.deps[name].Ping(ctx); err != nil {
			h.logger.Warn("GET /readyz - Dependency %s is not ready: %v", name, err)
			resp.Checks[name] = err.Error()
			resp.Status = "unavailable"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	handlers.RespondJSON(w, code, resp)
}
