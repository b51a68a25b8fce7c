package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptw_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ptw_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	permitTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptw_permit_transitions_total",
			Help: "Total number of permit lifecycle transitions",
		},
		[]string{"kind", "action"},
	)

	permitTransitionConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptw_permit_transition_conflicts_total",
			Help: "Transitions lost to a concurrent change of the same permit",
		},
		[]string{"kind"},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptw_notifications_total",
			Help: "Total number of notifications by outcome",
		},
		[]string{"event", "state"},
	)

	notificationsPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ptw_notifications_pending",
			Help: "Notifications waiting in the outbox",
		},
	)
)

func RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func RecordTransition(kind, action string) {
	permitTransitionsTotal.WithLabelValues(kind, action).Inc()
}

func RecordTransitionConflict(kind string) {
	permitTransitionConflicts.WithLabelValues(kind).Inc()
}

func RecordNotification(event, state string) {
	notificationsTotal.WithLabelValues(event, state).Inc()
}

func SetNotificationsPending(count int) {
	notificationsPending.Set(float64(count))
}

// Middleware records every api call under its route pattern.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		endpoint := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			endpoint = r.Path
		}
		RecordHTTPRequest(c.Method(), endpoint, c.Response().StatusCode(), time.Since(start))
		return err
	}
}

func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
