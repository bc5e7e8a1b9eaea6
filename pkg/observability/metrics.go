// Package observability holds the Prometheus metrics collector and the
// OpenTelemetry tracing bootstrap.
package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Business metrics
	MemoriesCreated prometheus.Counter
	DraftsPublished prometheus.Counter
	Generations     *prometheus.CounterVec

	// Persistence metrics
	RemoteFallbacks *prometheus.CounterVec
}

// NewCollector creates a metrics collector with the given namespace. A
// singleton avoids duplicate registration in tests.
func NewCollector(namespace string) *Collector {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	if globalCollector != nil {
		return globalCollector
	}

	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	memoriesCreated := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "memories_created_total",
			Help:      "Total number of memories created",
		},
	)

	draftsPublished := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drafts_published_total",
			Help:      "Total number of scheduled drafts published",
		},
	)

	generations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Total number of text generation requests",
		},
		[]string{"operation", "outcome"},
	)

	remoteFallbacks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_fallbacks_total",
			Help:      "Reads served from the local store after a remote failure",
		},
		[]string{"collection"},
	)

	registry.MustRegister(
		httpRequests,
		httpDuration,
		memoriesCreated,
		draftsPublished,
		generations,
		remoteFallbacks,
	)

	globalCollector = &Collector{
		registry:        registry,
		HTTPRequests:    httpRequests,
		HTTPDuration:    httpDuration,
		MemoriesCreated: memoriesCreated,
		DraftsPublished: draftsPublished,
		Generations:     generations,
		RemoteFallbacks: remoteFallbacks,
	}

	return globalCollector
}

// ResetForTesting resets the global collector for testing purposes
func ResetForTesting() {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()
	globalCollector = nil
}

// Handler returns the scrape endpoint handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
