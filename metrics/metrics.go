// Package metrics instruments enumeration with the prometheus
// client_golang collectors: vertex/edge counts, enumeration latency, and
// an error counter.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors holds the metrics Enumerate reports against. The zero value
// is not usable; use NewCollectors.
type Collectors struct {
	registry *prometheus.Registry

	EnumerationVertices prometheus.Gauge
	EnumerationEdges    prometheus.Gauge
	EnumerationDuration prometheus.Histogram
	EnumerationErrors   prometheus.Counter
}

// NewCollectors builds a fresh, registered set of collectors.
func NewCollectors() *Collectors {
	reg := prometheus.NewRegistry()

	c := &Collectors{
		registry: reg,
		EnumerationVertices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sastopo",
			Name:      "enumeration_vertices",
			Help:      "Vertex count of the most recently completed enumeration.",
		}),
		EnumerationEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sastopo",
			Name:      "enumeration_edges",
			Help:      "Edge count of the most recently completed enumeration.",
		}),
		EnumerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sastopo",
			Name:      "enumeration_duration_seconds",
			Help:      "Wall-clock time spent in Enumerate.",
			Buckets:   prometheus.DefBuckets,
		}),
		EnumerationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sastopo",
			Name:      "enumeration_errors_total",
			Help:      "Count of Enumerate calls that returned a non-nil error.",
		}),
	}

	reg.MustRegister(c.EnumerationVertices, c.EnumerationEdges, c.EnumerationDuration, c.EnumerationErrors)
	return c
}

// Handler returns the HTTP handler to serve at a /metrics endpoint.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
