package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

type stubParser struct {
	admins map[string]*domain.Admin
}

func (p stubParser) ParseToken(token string) (*domain.Admin, error) {
	if a, ok := p.admins[token]; ok {
		return a, nil
	}
	return nil, errors.New("bad token")
}

var parser = stubParser{admins: map[string]*domain.Admin{
	"admin-token": {Email: "admin@company.com", Role: domain.RoleAdmin},
	"super-token": {Email: "super@company.com", Role: domain.RoleSuperAdmin},
}}

func okHandler(w http.ResponseWriter, r *http.Request) {
	if admin, ok := GetAdmin(r.Context()); ok {
		w.Header().Set("X-Admin", admin.Email)
	}
	w.WriteHeader(http.StatusNoContent)
}

func TestAdminAuth(t *testing.T) {
	h := AdminAuth(parser, logger.NewNop())(http.HandlerFunc(okHandler))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"invalid", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer admin-token", http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "admin@company.com", rec.Header().Get("X-Admin"))
}

func TestRequireSuperAdmin(t *testing.T) {
	log := logger.NewNop()
	h := AdminAuth(parser, log)(RequireSuperAdmin(log)(http.HandlerFunc(okHandler)))

	for token, status := range map[string]int{"admin-token": http.StatusForbidden, "super-token": http.StatusNoContent} {
		req := httptest.NewRequest(http.MethodPost, "/api/offices", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, status, rec.Code, token)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
}

func TestRateLimit(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)
	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return base }
	h := RateLimit(limiter, logger.NewNop())(http.HandlerFunc(okHandler))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/send-otp", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.2"), "other clients keep their own bucket")

	limiter.now = func() time.Time { return base.Add(time.Second) }
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer(reg, "test")

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/parking-requests/user/{empId}", okHandler).Methods(http.MethodGet)

	for _, emp := range []string{"E1", "E2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/parking-requests/user/"+emp, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	families, err := reg.Gather()
	require.NoError(t, err)

	routes := map[string]float64{}
	for _, f := range families {
		if f.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "route" {
					routes[l.GetValue()] += metric.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, map[string]float64{"/api/parking-requests/user/{empId}": 2}, routes)
}
