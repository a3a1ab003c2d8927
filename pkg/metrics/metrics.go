// Package metrics defines the Prometheus collectors for query and index
// activity and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors. It implements storage.Observer.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	QueriesTotal        *prometheus.CounterVec
	QueryCandidates     *prometheus.HistogramVec
	QueryResults        *prometheus.HistogramVec
	IndexRebuildsTotal  *prometheus.CounterVec
	IndexedDocuments    *prometheus.GaugeVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg. A private
// registry keeps repeated construction (tests, multiple engines) from
// panicking on duplicate registration. A nil reg means a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	sizeBuckets := []float64{0, 1, 10, 100, 1000, 10000, 100000}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, route, and status.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"method", "route"},
		),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sortdex_queries_total",
				Help: "Total matcher queries by collection and plan (indexed, scan).",
			},
			[]string{"collection", "plan"},
		),
		QueryCandidates: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sortdex_query_candidates",
				Help:    "Positions checked per query after index narrowing.",
				Buckets: sizeBuckets,
			},
			[]string{"plan"},
		),
		QueryResults: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sortdex_query_results",
				Help:    "Matching positions returned per query.",
				Buckets: sizeBuckets,
			},
			[]string{"plan"},
		),
		IndexRebuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sortdex_index_rebuilds_total",
				Help: "Total full index rebuilds by collection.",
			},
			[]string{"collection"},
		),
		IndexedDocuments: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sortdex_indexed_documents",
				Help: "Documents covered by the last rebuild, by collection.",
			},
			[]string{"collection"},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.QueriesTotal,
		m.QueryCandidates,
		m.QueryResults,
		m.IndexRebuildsTotal,
		m.IndexedDocuments,
	)

	return m
}

func plan(usedIndexes bool) string {
	if usedIndexes {
		return "indexed"
	}
	return "scan"
}

// QueryServed records one answered query.
func (m *Metrics) QueryServed(collection string, usedIndexes bool, candidates, results int) {
	p := plan(usedIndexes)
	m.QueriesTotal.WithLabelValues(collection, p).Inc()
	m.QueryCandidates.WithLabelValues(p).Observe(float64(candidates))
	m.QueryResults.WithLabelValues(p).Observe(float64(results))
}

// IndexRebuilt records one full rebuild of a collection's indexes.
func (m *Metrics) IndexRebuilt(collection string, indexes, documents int) {
	if indexes == 0 {
		return
	}
	m.IndexRebuildsTotal.WithLabelValues(collection).Inc()
	m.IndexedDocuments.WithLabelValues(collection).Set(float64(documents))
}

// Handler returns the Prometheus scrape HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps streamed responses flowing through the middleware.
func (r *statusRecorder) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Middleware counts and times requests, labelled by the matched mux route
// template so positions and collection names do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
