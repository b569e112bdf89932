package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics tracks order placement outcomes and latencies.
type CheckoutMetrics struct {
	placements *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	failures   *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	placements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_placements_total",
		Help: "Order placement attempts by final status.",
	}, []string{"status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_placement_duration_seconds",
		Help:    "End-to-end order placement latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_placement_failures_total",
		Help: "Order placement failures by error code.",
	}, []string{"code"})
	reg.MustRegister(placements, duration, failures)
	return &CheckoutMetrics{
		placements: placements,
		duration:   duration,
		failures:   failures,
	}
}

// ObservePlacement records one placement attempt with its final status.
func (m *CheckoutMetrics) ObservePlacement(status string, elapsed time.Duration) {
	if m == nil || m.placements == nil {
		return
	}
	label := normalizeLabel(status)
	m.placements.WithLabelValues(label).Inc()
	m.duration.WithLabelValues(label).Observe(elapsed.Seconds())
}

// IncFailure counts a placement failure by its error code.
func (m *CheckoutMetrics) IncFailure(code string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(code)).Inc()
}
