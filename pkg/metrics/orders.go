package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Failure reasons recorded on the order creation counter.
const (
	ReasonValidation        = "validation"
	ReasonNotFound          = "not_found"
	ReasonInsufficientStock = "insufficient_stock"
	ReasonDatastore         = "datastore"
)

// OrderMetrics records outcomes of the order-creation path.
type OrderMetrics struct {
	created  prometheus.Counter
	failed   *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewOrderMetrics registers the order metrics on the provided registerer.
// A nil registerer yields a no-op recorder, mirroring how optional deps are
// handled elsewhere.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders committed successfully.",
	})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Order creation attempts rejected or rolled back.",
	}, []string{"reason"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_creation_duration_seconds",
		Help:    "Wall time of the order creation transaction.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(created, failed, duration)
	return &OrderMetrics{
		created:  created,
		failed:   failed,
		duration: duration,
	}
}

// IncCreated counts a committed order.
func (m *OrderMetrics) IncCreated() {
	if m == nil || m.created == nil {
		return
	}
	m.created.Inc()
}

// IncFailed counts a failed creation attempt by reason.
func (m *OrderMetrics) IncFailed(reason string) {
	if m == nil || m.failed == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.failed.WithLabelValues(reason).Inc()
}

// ObserveDuration records how long the creation path took.
func (m *OrderMetrics) ObserveDuration(d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.Observe(d.Seconds())
}
