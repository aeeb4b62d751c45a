package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the HTTP surface and the
// aggregation engine. It uses its own registry so tests can build several.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	countRuns       *prometheus.CounterVec
	countSelections prometheus.Histogram
	danglingLinks   prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "api_requests_inflight",
			Help: "HTTP requests currently being served.",
		}),
		countRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "count_parts_runs_total",
			Help: "CountParts computations by outcome.",
		}, []string{"outcome"}),
		countSelections: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "count_parts_selections",
			Help:    "Selections per CountParts request.",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		danglingLinks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_dangling_links_total",
			Help: "Links skipped because their part row was missing.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.countRuns,
		m.countSelections,
		m.danglingLinks,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ApiInflightInc() {
	if m != nil {
		m.apiInflight.Inc()
	}
}

func (m *Metrics) ApiInflightDec() {
	if m != nil {
		m.apiInflight.Dec()
	}
}

func (m *Metrics) ObserveAPI(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveCount records one CountParts run; outcome is "ok" or an error code.
func (m *Metrics) ObserveCount(outcome string, selections int) {
	if m == nil {
		return
	}
	m.countRuns.WithLabelValues(outcome).Inc()
	m.countSelections.Observe(float64(selections))
}

func (m *Metrics) DanglingLink() {
	if m != nil {
		m.danglingLinks.Inc()
	}
}
