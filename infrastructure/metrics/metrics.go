// Package metrics exposes Prometheus metrics for checks and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/helixml/docnav/domain/check"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "docnav"

// Collector owns a registry and the docnav metrics registered on it.
type Collector struct {
	registry *prometheus.Registry

	checkRuns     *prometheus.CounterVec
	checkDuration prometheus.Histogram
	linksChecked  prometheus.Counter
	problems      *prometheus.GaugeVec
	lastRun       prometheus.Gauge

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New creates a Collector with Go runtime and process metrics included.
func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		checkRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "check",
			Name:      "runs_total",
			Help:      "Completed check runs by result (ok or failed).",
		}, []string{"result"}),
		checkDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "check",
			Name:      "duration_seconds",
			Help:      "Wall time of check runs.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		linksChecked: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "check",
			Name:      "links_total",
			Help:      "Links examined across all check runs.",
		}),
		problems: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "check",
			Name:      "problems",
			Help:      "Problems found by the most recent check, by version and kind.",
		}, []string{"version", "kind"}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "check",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the most recent check finished.",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// RecordCheck records a finished report. The problems gauge is reset so it
// reflects only the latest run.
func (c *Collector) RecordCheck(r check.Report) {
	result := "ok"
	if !r.OK() {
		result = "failed"
	}
	c.checkRuns.WithLabelValues(result).Inc()
	c.checkDuration.Observe(r.Duration().Seconds())
	c.linksChecked.Add(float64(r.LinksChecked()))
	c.lastRun.Set(float64(r.FinishedAt().Unix()))

	c.problems.Reset()
	for _, v := range r.Versions() {
		for _, k := range check.Kinds() {
			c.problems.WithLabelValues(v, string(k)).Set(0)
		}
	}
	for _, p := range r.Problems() {
		c.problems.WithLabelValues(p.Version(), string(p.Kind())).Inc()
	}
}

// RecordRequest records one HTTP request.
func (c *Collector) RecordRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
