package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carbook",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		},
		[]string{"route", "status"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carbook",
			Name:      "bookings_created_total",
			Help:      "Successfully created bookings.",
		},
	)

	bookingsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carbook",
			Name:      "bookings_rejected_total",
			Help:      "Booking attempts rejected by the availability gate.",
		},
	)

	bookingsDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carbook",
			Name:      "bookings_deleted_total",
			Help:      "Bookings removed by an administrator.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, bookingsRejected, bookingsDeleted)
	})
}

// IncHTTP increments the request counter for a route/status pair.
func IncHTTP(route, status string) {
	httpRequests.WithLabelValues(route, status).Inc()
}

func IncBookingCreated() { bookingsCreated.Inc() }

func IncBookingRejected() { bookingsRejected.Inc() }

func IncBookingDeleted() { bookingsDeleted.Inc() }
