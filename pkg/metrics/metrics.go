package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	RequestsSubmitted    *prometheus.CounterVec
	Decisions            *prometheus.CounterVec
	WaitlistPromotions   prometheus.Counter
	ReservationExhausted prometheus.Counter
}

// New регистрирует коллекторы в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer регистрирует коллекторы в переданном реестре (в тестах - отдельный prometheus.NewRegistry())
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		RequestsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "parking_requests_submitted_total",
			Help:        "Parking request submissions by resulting status",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		Decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "parking_decisions_total",
			Help:        "Admin decisions by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		WaitlistPromotions: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "parking_waitlist_promotions_total",
			Help:        "Waitlisted requests promoted to approved",
			ConstLabels: constLabels,
		}),
		ReservationExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "parking_reservation_exhausted_total",
			Help:        "Slot reservations rejected because the pool was full",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.RequestsSubmitted,
		m.Decisions,
		m.WaitlistPromotions,
		m.ReservationExhausted,
	)

	return m
}

// Методы ниже безопасны для nil - usecases вызывают их без проверки, включены ли метрики

func (m *Metrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.RequestsSubmitted.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveDecision(outcome string) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObservePromotion() {
	if m == nil {
		return
	}
	m.WaitlistPromotions.Inc()
}

func (m *Metrics) ObserveExhausted() {
	if m == nil {
		return
	}
	m.ReservationExhausted.Inc()
}
