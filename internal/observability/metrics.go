// Package observability provides the Prometheus instruments for the
// classification service and the /metrics scrape handler.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	labelOp     = "op"
	labelStatus = "status"
	labelLayer  = "layer"

	statusOK    = "ok"
	statusError = "error"
)

// durationBucketBoundaries covers 100µs to 10s: single-file classification
// is usually sub-millisecond, large documents can take much longer.
var durationBucketBoundaries = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10}

// Metrics holds the RED instruments plus layer-distribution counters.
// Each Metrics owns an independent registry so repeated construction in
// tests never conflicts.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	regionsTotal    *prometheus.CounterVec
	bytesClassified prometheus.Counter
	cacheHitsTotal  prometheus.Counter
}

// NewMetrics creates and registers the classification service instruments.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := registrar{registry}

	return &Metrics{
		registry: registry,
		requestsTotal: factory.counterVec("strata_requests_total",
			"Total number of classification requests.", labelOp, labelStatus),
		requestDuration: factory.histogramVec("strata_request_duration_seconds",
			"Classification request duration in seconds.", labelOp),
		regionsTotal: factory.counterVec("strata_regions_total",
			"Total classified regions by layer.", labelLayer),
		bytesClassified: factory.counter("strata_bytes_classified_total",
			"Total source bytes classified."),
		cacheHitsTotal: factory.counter("strata_cache_hits_total",
			"Total classification cache hits."),
	}
}

// registrar is a small registration helper bound to one registry.
type registrar struct {
	registry *prometheus.Registry
}

func (f registrar) counter(name, help string) prometheus.Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
	f.registry.MustRegister(c)

	return c
}

func (f registrar) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
	f.registry.MustRegister(c)

	return c
}

func (f registrar) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    name,
		Help:    help,
		Buckets: durationBucketBoundaries,
	}, labels)
	f.registry.MustRegister(h)

	return h
}

// RecordRequest records a completed request with its operation, outcome and
// duration.
func (m *Metrics) RecordRequest(op string, err error, duration time.Duration) {
	status := statusOK
	if err != nil {
		status = statusError
	}

	m.requestsTotal.WithLabelValues(op, status).Inc()
	m.requestDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordRegions records the per-layer region counts of one classification.
func (m *Metrics) RecordRegions(counts map[string]int, byteLen int) {
	for layerName, n := range counts {
		m.regionsTotal.WithLabelValues(layerName).Add(float64(n))
	}

	m.bytesClassified.Add(float64(byteLen))
}

// RecordCacheHit counts a classification served from the region cache.
func (m *Metrics) RecordCacheHit() {
	m.cacheHitsTotal.Inc()
}

// Handler returns the /metrics scrape endpoint for this instrument set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
