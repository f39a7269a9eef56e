package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides
// lightweight snapshots for the health surface.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	parseDuration   prometheus.Observer
	documentsParsed *prometheus.CounterVec
	schedulesBuilt  prometheus.Counter
	emailsSent      *prometheus.CounterVec
	cacheHitRatio   prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter

	cacheHitCount        uint64
	cacheMissCount       uint64
	requestCount         uint64
	requestDurationTotal uint64
	parsedCount          uint64
	scheduleCount        uint64
	emailCount           uint64
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

	parseDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "syllabus_parse_duration_seconds",
		Help:    "Time spent extracting and parsing one syllabus",
		Buckets: prometheus.DefBuckets,
	})

	documentsParsed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "syllabus_documents_parsed_total",
		Help: "Syllabus documents parsed, labelled by file format",
	}, []string{"format"})

	schedulesBuilt := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedules_generated_total",
		Help: "Schedules synthesized",
	})

	emailsSent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_emails_total",
		Help: "Schedule emails attempted, labelled by outcome",
	}, []string{"outcome"})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, parseDuration, documentsParsed, schedulesBuilt, emailsSent, cacheHitRatio, cacheHits, cacheMisses, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		parseDuration:   parseDuration,
		documentsParsed: documentsParsed,
		schedulesBuilt:  schedulesBuilt,
		emailsSent:      emailsSent,
		cacheHitRatio:   cacheHitRatio,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
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

// ObserveHTTPRequest records request metrics and aggregates simple stats.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveParse records one parsed syllabus.
func (m *MetricsService) ObserveParse(format string, duration time.Duration) {
	if m == nil {
		return
	}
	m.parseDuration.Observe(duration.Seconds())
	m.documentsParsed.WithLabelValues(format).Inc()
	atomic.AddUint64(&m.parsedCount, 1)
}

// ObserveScheduleGenerated counts one synthesized schedule.
func (m *MetricsService) ObserveScheduleGenerated() {
	if m == nil {
		return
	}
	m.schedulesBuilt.Inc()
	atomic.AddUint64(&m.scheduleCount, 1)
}

// ObserveEmail records one email attempt.
func (m *MetricsService) ObserveEmail(sent bool) {
	if m == nil {
		return
	}
	outcome := "sent"
	if !sent {
		outcome = "failed"
	}
	m.emailsSent.WithLabelValues(outcome).Inc()
	if sent {
		atomic.AddUint64(&m.emailCount, 1)
	}
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	total := hits + misses
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// Snapshot returns aggregated counters for the health endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var cacheRatio float64
	totalLookups := hits + misses
	if totalLookups > 0 {
		cacheRatio = float64(hits) / float64(totalLookups)
	}

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return models.SystemMetrics{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		DocumentsParsed:          atomic.LoadUint64(&m.parsedCount),
		SchedulesGenerated:       atomic.LoadUint64(&m.scheduleCount),
		EmailsSent:               atomic.LoadUint64(&m.emailCount),
		CacheHitRatio:            cacheRatio,
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
