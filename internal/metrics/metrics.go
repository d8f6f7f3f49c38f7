package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barberpro",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingsConfirmed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barberpro",
			Name:      "bookings_confirmed_total",
			Help:      "Appointments confirmed through the booking wizard.",
		},
	)

	ordersCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barberpro",
			Name:      "orders_completed_total",
			Help:      "Store orders completed through checkout.",
		},
	)

	ledgerExports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barberpro",
			Name:      "ledger_exports_total",
			Help:      "Excel ledger export attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsConfirmed, ordersCompleted, ledgerExports)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncBookingConfirmed counts one confirmed appointment.
func IncBookingConfirmed() {
	bookingsConfirmed.Inc()
}

// IncOrderCompleted counts one completed checkout.
func IncOrderCompleted() {
	ordersCompleted.Inc()
}

// IncLedgerExport counts a ledger export attempt ("ok" or "error").
func IncLedgerExport(outcome string) {
	ledgerExports.WithLabelValues(outcome).Inc()
}
