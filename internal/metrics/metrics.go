package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	procedureCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "restaurant",
			Subsystem: "rpc",
			Name:      "calls_total",
			Help:      "Total number of procedure calls by outcome.",
		},
		[]string{"procedure", "status"},
	)

	procedureDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "restaurant",
			Subsystem: "rpc",
			Name:      "call_duration_seconds",
			Help:      "Duration of procedure calls.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"procedure"},
	)

	ordersPlaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "restaurant",
			Subsystem: "orders",
			Name:      "placed_total",
			Help:      "Total number of order placements by result.",
		},
		[]string{"result"},
	)

	orderNumberRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "restaurant",
			Subsystem: "orders",
			Name:      "number_collisions_total",
			Help:      "Order number collisions that caused a retry.",
		},
	)

	eventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "restaurant",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Domain events handed to the broker by type and result.",
		},
		[]string{"type", "result"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "restaurant",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		procedureCalls,
		procedureDuration,
		ordersPlaced,
		orderNumberRetries,
		eventsPublished,
		cacheLookups,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordProcedure records one procedure call. status is "ok" or an error class.
func RecordProcedure(procedure, status string, duration time.Duration) {
	if duration <= 0 {
		duration = time.Microsecond
	}
	procedureCalls.WithLabelValues(procedure, status).Inc()
	procedureDuration.WithLabelValues(procedure).Observe(duration.Seconds())
}

func RecordOrderPlaced(success bool) {
	ordersPlaced.WithLabelValues(result(success)).Inc()
}

func RecordOrderNumberCollision() {
	orderNumberRetries.Inc()
}

func RecordEventPublished(eventType string, success bool) {
	eventsPublished.WithLabelValues(eventType, result(success)).Inc()
}

func RecordCacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
