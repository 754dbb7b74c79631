package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	uploadsTotal    prometheus.Counter
	reviewsTotal    *prometheus.CounterVec
	sessionsPurged  prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stats_cache_hits_total",
		Help: "Total stats cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stats_cache_misses_total",
		Help: "Total stats cache misses",
	})

	uploadsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "documents_uploaded_total",
		Help: "Total document uploads accepted",
	})

	reviewsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "documents_reviewed_total",
		Help: "Total review decisions recorded",
	}, []string{"status"})

	sessionsPurged := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sessions_purged_total",
		Help: "Total expired sessions removed by the cleanup job",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheHits, cacheMisses, uploadsTotal, reviewsTotal, sessionsPurged, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		uploadsTotal:    uploadsTotal,
		reviewsTotal:    reviewsTotal,
		sessionsPurged:  sessionsPurged,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheLookup counts a stats cache hit or miss.
func (m *MetricsService) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}

// RecordUpload counts an accepted document upload.
func (m *MetricsService) RecordUpload() {
	if m == nil {
		return
	}
	m.uploadsTotal.Inc()
}

// RecordReview counts a review decision by outcome.
func (m *MetricsService) RecordReview(status string) {
	if m == nil {
		return
	}
	m.reviewsTotal.WithLabelValues(status).Inc()
}

// RecordSessionsPurged adds to the cleanup counter.
func (m *MetricsService) RecordSessionsPurged(count int64) {
	if m == nil || count <= 0 {
		return
	}
	m.sessionsPurged.Add(float64(count))
}
