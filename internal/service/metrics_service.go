package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface, the snapshot cache and the token economy.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter

	tokensMinted      prometheus.Counter
	tokensTransferred prometheus.Counter
	transferFees      prometheus.Counter
	bidsPlaced        prometheus.Counter
	coursesCleared    prometheus.Counter
	studentsEnrolled  prometheus.Counter
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

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	tokensMinted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokens_minted_total",
		Help: "Tokens minted through fee payments",
	})

	tokensTransferred := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokens_transferred_total",
		Help: "Tokens moved between students",
	})

	transferFees := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "transfer_fees_collected_total",
		Help: "Transfer fees collected by the platform",
	})

	bidsPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bids_placed_total",
		Help: "Bids placed across all courses",
	})

	coursesCleared := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "courses_cleared_total",
		Help: "Courses whose enrollment has been closed",
	})

	studentsEnrolled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "students_enrolled_total",
		Help: "Enrollment seats awarded at clearing",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheWrite,
		cacheHits, cacheMisses, tokensMinted, tokensTransferred, transferFees,
		bidsPlaced, coursesCleared, studentsEnrolled, goroutines)

	return &MetricsService{
		registry:          registry,
		handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		cacheLatency:      cacheLatency,
		cacheWrite:        cacheWrite,
		cacheHits:         cacheHits,
		cacheMisses:       cacheMisses,
		tokensMinted:      tokensMinted,
		tokensTransferred: tokensTransferred,
		transferFees:      transferFees,
		bidsPlaced:        bidsPlaced,
		coursesCleared:    coursesCleared,
		studentsEnrolled:  studentsEnrolled,
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

// RecordCacheOperation records cache hit/miss metrics.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}

// ObserveCacheWrite tracks the duration of cache set operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// AddTokensMinted counts tokens created by fee payments.
func (m *MetricsService) AddTokensMinted(amount uint64) {
	if m == nil {
		return
	}
	m.tokensMinted.Add(float64(amount))
}

// AddTokensTransferred counts student-to-student token movement and the fee
// the platform collected on it.
func (m *MetricsService) AddTokensTransferred(amount, fee uint64) {
	if m == nil {
		return
	}
	m.tokensTransferred.Add(float64(amount))
	m.transferFees.Add(float64(fee))
}

// IncBidsPlaced counts a placed bid.
func (m *MetricsService) IncBidsPlaced() {
	if m == nil {
		return
	}
	m.bidsPlaced.Inc()
}

// ObserveClearing counts a cleared course and its awarded seats.
func (m *MetricsService) ObserveClearing(winners int) {
	if m == nil {
		return
	}
	m.coursesCleared.Inc()
	m.studentsEnrolled.Add(float64(winners))
}
