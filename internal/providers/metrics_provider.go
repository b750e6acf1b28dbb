package providers

import (
	"scopewatch/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveStoreQuery(operation string, duration time.Duration)
	IncSignedURLs(result string)
	SetMonitorsTotal(count int)
	SetScopesTotal(status string, count int)
}

type MetricsProvider struct {
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	storeQueryDuration *prometheus.HistogramVec
	signedURLsTotal    *prometheus.CounterVec
	monitorsTotal      prometheus.Gauge
	scopesTotal        *prometheus.GaugeVec
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

func (m *MetricsProvider) ObserveStoreQuery(operation string, duration time.Duration) {
	m.storeQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncSignedURLs(result string) {
	m.signedURLsTotal.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) SetMonitorsTotal(count int) {
	m.monitorsTotal.Set(float64(count))
}

func (m *MetricsProvider) SetScopesTotal(status string, count int) {
	m.scopesTotal.WithLabelValues(status).Set(float64(count))
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
			Name: "scopewatch_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scopewatch_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scopewatch_cache_hits_total",
			Help: "Total number of response cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scopewatch_cache_misses_total",
			Help: "Total number of response cache misses",
		}),

		storeQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scopewatch_store_query_duration_seconds",
			Help:    "Entity store query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		signedURLsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scopewatch_signed_urls_total",
			Help: "Total number of signed URL issuance attempts",
		}, []string{"result"}),

		monitorsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "scopewatch_monitors_total",
			Help: "Number of monitors known to the entity store",
		}),

		scopesTotal: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scopewatch_scopes_total",
			Help: "Number of monitoring scopes per status",
		}, []string{"status"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObserveStoreQuery(_ string, _ time.Duration)      {}
func (n *noopMetrics) IncSignedURLs(_ string)                           {}
func (n *noopMetrics) SetMonitorsTotal(_ int)                           {}
func (n *noopMetrics) SetScopesTotal(_ string, _ int)                   {}
