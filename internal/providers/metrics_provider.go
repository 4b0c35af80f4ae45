package providers

import (
	"sentinel/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncProbesTotal(outcome string)
	ObserveProbeDuration(duration time.Duration)
	SetSitesTotal(count int)
	ObserveSweepDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	probesTotal     *prometheus.CounterVec
	probeDuration   prometheus.Histogram
	sitesTotal      prometheus.Gauge
	sweepDuration   prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncProbesTotal(outcome string) {
	m.probesTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObserveProbeDuration(duration time.Duration) {
	m.probeDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetSitesTotal(count int) {
	m.sitesTotal.Set(float64(count))
}

func (m *MetricsProvider) ObserveSweepDuration(duration time.Duration) {
	m.sweepDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sentinel_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_cache_hits_total",
			Help: "Total number of probe cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_cache_misses_total",
			Help: "Total number of probe cache misses",
		}),

		probesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_probes_total",
			Help: "Total number of site probes by outcome",
		}, []string{"outcome"}),

		probeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sentinel_probe_duration_seconds",
			Help:    "Duration of site probes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		sitesTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_sites_total",
			Help: "Number of sites seen by the last sweep",
		}),

		sweepDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sentinel_sweep_duration_seconds",
			Help:    "Duration of full monitoring sweeps in seconds",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncCacheHits()                                     {}
func (n *noopMetrics) IncCacheMisses()                                   {}
func (n *noopMetrics) IncProbesTotal(_ string)                           {}
func (n *noopMetrics) ObserveProbeDuration(_ time.Duration)              {}
func (n *noopMetrics) SetSitesTotal(_ int)                               {}
func (n *noopMetrics) ObserveSweepDuration(_ time.Duration)              {}
