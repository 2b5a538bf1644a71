package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware считает запросы и их длительность. Маршрут берётся из шаблона mux,
// чтобы id в пути не раздували число серий.
func MetricsMiddleware(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := "unmatched"
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}

			m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
