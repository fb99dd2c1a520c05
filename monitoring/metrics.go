package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "compliance_verification_transitions_total",
		Help: "Seller verification state transitions by source and target state",
	}, []string{"from", "to"})

	evaluationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "compliance_threshold_evaluations_total",
		Help: "Threshold evaluator runs",
	})

	sweepSuspensionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "compliance_sweep_suspensions_total",
		Help: "Sellers suspended by the deadline-expiry sweep",
	})

	notificationsDispatchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "compliance_notifications_dispatched_total",
		Help: "Notification outbox dispatch outcomes",
	}, []string{"outcome"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "compliance_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status code",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)

// RecordTransition counts one verification state transition
func RecordTransition(from, to string) {
	transitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordEvaluation counts one threshold evaluator run
func RecordEvaluation() {
	evaluationsTotal.Inc()
}

// RecordSweepSuspensions counts sellers suspended by one sweep pass
func RecordSweepSuspensions(n int) {
	sweepSuspensionsTotal.Add(float64(n))
}

// RecordNotificationDispatch counts one notification dispatch outcome
// ("sent" or "failed")
func RecordNotificationDispatch(outcome string) {
	notificationsDispatchedTotal.WithLabelValues(outcome).Inc()
}

// ObserveHTTPRequest records one HTTP request observation
func ObserveHTTPRequest(route, method, status string, seconds float64) {
	httpRequestDuration.WithLabelValues(route, method, status).Observe(seconds)
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
