package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
type BusinessMetrics struct {
	// Cart merge (login reconciliation)
	MergeRuns        prometheus.Counter
	MergeLinesMerged prometheus.Counter
	MergeLinesFailed prometheus.Counter

	// Checkout funnel
	CheckoutStarted   prometheus.Counter
	CheckoutCompleted prometheus.Counter
	PaymentDeclined   prometheus.Counter
	PaymentFailed     prometheus.Counter
	OrdersCancelled   prometheus.Counter

	// Order value distribution (cents)
	OrderValue prometheus.Histogram
}

// NewBusinessMetrics creates and registers all business metrics.
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "njord"
	}

	subsystem := "business"

	return &BusinessMetrics{
		MergeRuns: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cart_merge_runs_total",
			Help:      "Total guest cart merge runs at login",
		}),
		MergeLinesMerged: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cart_merge_lines_merged_total",
			Help:      "Total guest cart lines merged into server carts",
		}),
		MergeLinesFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cart_merge_lines_failed_total",
			Help:      "Total guest cart lines that failed to merge",
		}),
		CheckoutStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "checkout_started_total",
			Help:      "Total checkout attempts started",
		}),
		CheckoutCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "checkout_completed_total",
			Help:      "Total checkouts that reached processing",
		}),
		PaymentDeclined: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "payment_declined_total",
			Help:      "Total card declines during checkout",
		}),
		PaymentFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "payment_failed_total",
			Help:      "Total gateway failures during checkout",
		}),
		OrdersCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "orders_cancelled_total",
			Help:      "Total orders cancelled",
		}),
		OrderValue: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "order_value_cents",
			Help:      "Distribution of completed order totals in cents",
			Buckets:   []float64{500, 1000, 2500, 5000, 10000, 25000, 50000, 100000},
		}),
	}
}
