package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lotomania",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lotomania",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"method", "route"},
	)

	generatorBatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lotomania",
			Subsystem: "generator",
			Name:      "batches_total",
			Help:      "Total number of batch generation runs.",
		},
		[]string{"strategy", "outcome"},
	)

	generatorDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lotomania",
			Subsystem: "generator",
			Name:      "generation_duration_seconds",
			Help:      "Duration of batch generation runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
		[]string{"strategy"},
	)

	generatorFitness = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "lotomania",
			Subsystem: "generator",
			Name:      "best_fitness",
			Help:      "Best fitness reached in the most recent batch.",
		},
		[]string{"strategy"},
	)

	resultFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lotomania",
			Subsystem: "results",
			Name:      "fetch_total",
			Help:      "Total number of draw result lookups by source.",
		},
		[]string{"source", "outcome"},
	)

	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lotomania",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of result cache hits.",
		},
		[]string{"kind"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		generatorBatches,
		generatorDuration,
		generatorFitness,
		resultFetches,
		cacheHits,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler records request counts and latency labelled by chi route pattern.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

// RecordBatch records a generation run. fitness is ignored for failed runs.
func RecordBatch(strategy string, duration time.Duration, fitness float64, err error) {
	if strategy == "" {
		strategy = "unknown"
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	generatorBatches.WithLabelValues(strategy, outcome).Inc()
	generatorDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	if err == nil {
		generatorFitness.WithLabelValues(strategy).Set(fitness)
	}
}

// RecordFetch records a draw lookup served by source ("cache", "remote", "history").
func RecordFetch(source string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	resultFetches.WithLabelValues(source, outcome).Inc()
}

// RecordCacheHit records a cache hit of the given kind ("contest", "latest").
func RecordCacheHit(kind string) {
	cacheHits.WithLabelValues(kind).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
