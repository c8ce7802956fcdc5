package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 注文確定まわりの計測。
type CheckoutMetrics struct {
	placed   prometheus.Counter
	rejected *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewCheckoutMetrics() *CheckoutMetrics {
	placed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookstore",
		Subsystem: "checkout",
		Name:      "orders_placed_total",
		Help:      "Total number of successfully placed orders.",
	})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookstore",
		Subsystem: "checkout",
		Name:      "orders_rejected_total",
		Help:      "Total number of rejected checkout attempts.",
	}, []string{"reason"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bookstore",
		Subsystem: "checkout",
		Name:      "duration_ms",
		Help:      "Checkout latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})

	prometheus.MustRegister(placed, rejected, duration)
	return &CheckoutMetrics{placed: placed, rejected: rejected, duration: duration}
}

func (m *CheckoutMetrics) Placed() {
	if m == nil {
		return
	}
	m.placed.Inc()
}

func (m *CheckoutMetrics) Rejected(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *CheckoutMetrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(float64(d.Milliseconds()))
}

func Handler() http.Handler {
	return promhttp.Handler()
}
