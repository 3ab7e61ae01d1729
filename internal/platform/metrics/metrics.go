package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gateway.
type Metrics struct {
	RequestsTotal       *prometheus.CounterVec
	VendorAttemptsTotal *prometheus.CounterVec
	CacheHitsTotal      *prometheus.CounterVec
	CacheMissesTotal    *prometheus.CounterVec
	VendorCallDuration  *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kycgate_requests_total",
			Help: "Verification requests by service and terminal outcome",
		}, []string{"service", "outcome"}),
		VendorAttemptsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kycgate_vendor_attempts_total",
			Help: "Individual vendor attempts by vendor and result",
		}, []string{"service", "vendor", "result"}),
		CacheHitsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kycgate_cache_hits_total",
			Help: "Canonical record cache hits by service",
		}, []string{"service"}),
		CacheMissesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kycgate_cache_misses_total",
			Help: "Canonical record cache misses by service",
		}, []string{"service"}),
		VendorCallDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kycgate_vendor_call_duration_seconds",
			Help:    "Outbound vendor call latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "vendor"}),
	}
}

// RecordRequest increments the per-service request counter.
func (m *Metrics) RecordRequest(service, outcome string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(service, outcome).Inc()
}

// RecordVendorAttempt increments the vendor attempt counter.
func (m *Metrics) RecordVendorAttempt(service, vendor, result string) {
	if m == nil {
		return
	}
	m.VendorAttemptsTotal.WithLabelValues(service, vendor, result).Inc()
}

// RecordCacheHit increments the cache hit counter.
func (m *Metrics) RecordCacheHit(service string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(service).Inc()
}

// RecordCacheMiss increments the cache miss counter.
func (m *Metrics) RecordCacheMiss(service string) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.WithLabelValues(service).Inc()
}

// ObserveVendorCall records the latency of one outbound vendor call.
func (m *Metrics) ObserveVendorCall(service, vendor string, seconds float64) {
	if m == nil {
		return
	}
	m.VendorCallDuration.WithLabelValues(service, vendor).Observe(seconds)
}
