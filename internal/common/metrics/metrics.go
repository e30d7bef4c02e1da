package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	documentsMigrated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "builder_documents_migrated_total",
			Help: "Legacy documents migrated into element documents",
		},
		[]string{"source"},
	)
	elementsMigrated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "builder_elements_migrated_total",
			Help: "Elements produced by forward migration",
		},
	)
	gesturesCommitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "builder_gestures_committed_total",
			Help: "Drag/resize/rotate gestures committed to the element model",
		},
		[]string{"gesture"},
	)
	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "builder_active_sessions",
			Help: "Open editing sessions",
		},
	)
)

// Init registers the collectors. Call once from main.
func Init(reg prometheus.Registerer) {
	reg.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		documentsMigrated,
		elementsMigrated,
		gesturesCommitted,
		activeSessions,
	)
}

// Middleware tracks request counts and latency per route template.
func Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		httpRequestsTotal.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route, c.Method()).Observe(time.Since(start).Seconds())
		return err
	}
}

func DocumentMigrated(source string, elements int) {
	documentsMigrated.WithLabelValues(source).Inc()
	elementsMigrated.Add(float64(elements))
}

func GestureCommitted(gesture string) {
	gesturesCommitted.WithLabelValues(gesture).Inc()
}

func SessionOpened() { activeSessions.Inc() }

func SessionClosed() { activeSessions.Dec() }
