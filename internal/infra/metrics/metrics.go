package metrics

import (
	"strconv"
	"time"

	"innkeeper/internal/domain/reservation"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "innkeeper"

// Metrics owns its registry so that several instances (one per test app)
// never collide on the global one.
type Metrics struct {
	Registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	reservationsCreated *prometheus.CounterVec
	conflicts           prometheus.Counter
	transitions         *prometheus.CounterVec
	holdsExpired        prometheus.Counter
	idempotentReplays   prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		requestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		reservationsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reservations_created_total",
				Help:      "Reservations created, by room type",
			},
			[]string{"room_type"},
		),
		conflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_conflicts_total",
			Help:      "CreateReservation calls rejected because the range was taken",
		}),
		transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reservation_transitions_total",
				Help:      "Reservation state transitions",
			},
			[]string{"from", "to"},
		),
		holdsExpired: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "holds_expired_total",
			Help:      "PENDING reservations cancelled because their hold ran out",
		}),
		idempotentReplays: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "idempotent_replays_total",
			Help:      "CreateReservation calls answered from a stored idempotency key",
		}),
	}
}

func (m *Metrics) ReservationCreated(roomType string) {
	m.reservationsCreated.WithLabelValues(roomType).Inc()
}

func (m *Metrics) AvailabilityConflict() { m.conflicts.Inc() }

func (m *Metrics) Transition(from, to reservation.State) {
	m.transitions.WithLabelValues(from.String(), to.String()).Inc()
}

func (m *Metrics) HoldExpired() { m.holdsExpired.Inc() }

func (m *Metrics) IdempotentReplay() { m.idempotentReplays.Inc() }

// Middleware records request counts and latency labelled by route template,
// which keeps label cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.requestTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
