package api

import (
	"delivery-driver-service/internal/domain"
	"delivery-driver-service/internal/geo"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "delivery_driver"

type metrics struct {
	httpDuration  *prometheus.HistogramVec
	totalRequests *prometheus.CounterVec
}

// newMetrics registers the HTTP collectors and exports the sort cache counters.
func newMetrics(reg prometheus.Registerer, sorter *geo.SortCache[*domain.Delivery]) *metrics {
	m := &metrics{
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "The duration of HTTP requests",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route"}),
		totalRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "The total number of HTTP requests",
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		m.httpDuration,
		m.totalRequests,
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sort_cache_hits_total",
			Help:      "Distance orderings served from the sort cache",
		}, func() float64 { return float64(sorter.Hits()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sort_cache_misses_total",
			Help:      "Distance orderings computed because the sort cache had no entry",
		}, func() float64 { return float64(sorter.Misses()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "sort_cache_entries",
			Help:      "Orderings currently held by the sort cache",
		}, func() float64 { return float64(sorter.Len()) }),
	)
	return m
}

// metricsMiddleware labels requests by the mux pattern that matched, so
// unknown paths collapse into one "unmatched" series.
func metricsMiddleware(m *metrics, mux *http.ServeMux, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unmatched"
		if _, pattern := mux.Handler(r); pattern != "" {
			route = pattern
		}

		rec := &responseRecorder{ResponseWriter: w}
		timer := prometheus.NewTimer(m.httpDuration.WithLabelValues(r.Method, route))

		next.ServeHTTP(rec, r)

		timer.ObserveDuration()
		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		m.totalRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}
