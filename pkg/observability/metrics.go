package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application. Each
// collector owns its registry so tests can create as many as they need
// without duplicate-registration panics.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Clustering metrics
	Clusterings        prometheus.Counter
	ClusteringDuration prometheus.Histogram
	VisibleClusters    prometheus.Gauge

	// Session metrics
	WeightEdits   prometheus.Counter
	DocumentLoads prometheus.Counter
}

// NewCollector creates a metrics collector with the given namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Clusterings: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "clusterings_total",
				Help:      "Total number of full cluster recomputations",
			},
		),
		ClusteringDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "clustering_duration_seconds",
				Help:      "Duration of a full cluster recomputation",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
		VisibleClusters: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "visible_clusters",
				Help:      "Number of clusters in the last computed frame",
			},
		),
		WeightEdits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "weight_edits_total",
				Help:      "Total number of accepted edge weight edits",
			},
		),
		DocumentLoads: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "document_loads_total",
				Help:      "Total number of document ingestions",
			},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.Clusterings,
		c.ClusteringDuration,
		c.VisibleClusters,
		c.WeightEdits,
		c.DocumentLoads,
	)

	return c
}

// Handler exposes the collector's registry for the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
