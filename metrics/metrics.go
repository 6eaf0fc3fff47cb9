// Package metrics описывает метрики приложения.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics decouples services from Prometheus.
type Metrics interface {
	IncRegistrations(outcome string)
	IncPaymentsRecorded()
	IncPaymentsFailed()
	IncStatusChanges()
	ObserveRequest(method, route string, status int, seconds float64)
}

// Исходы регистрации.
const (
	OutcomeRegistered = "registered"
	OutcomeUntracked  = "untracked_capacity"
	OutcomeFull       = "full"
	OutcomeNotFound   = "not_found"
	OutcomeError      = "error"
)

// Service holds all the Prometheus collectors.
type Service struct {
	Registrations   *prometheus.CounterVec
	PaymentsOK      prometheus.Counter
	PaymentsFailed  prometheus.Counter
	StatusChanges   prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

var _ Metrics = (*Service)(nil)

// NewService creates and registers the collectors.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grindzone_registrations_total",
			Help: "Tournament registration attempts by outcome.",
		}, []string{"outcome"}),
		PaymentsOK: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grindzone_payments_recorded_total",
			Help: "Payments appended to the ledger.",
		}),
		PaymentsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grindzone_payments_failed_total",
			Help: "Payments that could not be appended after capacity was updated.",
		}),
		StatusChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grindzone_status_changes_total",
			Help: "Tournament phase changes detected by the sweeper.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "grindzone_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		s.Registrations,
		s.PaymentsOK,
		s.PaymentsFailed,
		s.StatusChanges,
		s.RequestDuration,
	)

	return s
}

// NewHandler returns an http.Handler for the given Gatherer.
func NewHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

func (s *Service) IncRegistrations(outcome string) {
	s.Registrations.WithLabelValues(outcome).Inc()
}

func (s *Service) IncPaymentsRecorded() {
	s.PaymentsOK.Inc()
}

func (s *Service) IncPaymentsFailed() {
	s.PaymentsFailed.Inc()
}

func (s *Service) IncStatusChanges() {
	s.StatusChanges.Inc()
}

func (s *Service) ObserveRequest(method, route string, status int, seconds float64) {
	s.RequestDuration.WithLabelValues(method, route, statusClass(status)).Observe(seconds)
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
