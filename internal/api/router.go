package api

import (
	"context"
	"delivery-driver-service/internal/api/handlers"
	"delivery-driver-service/internal/domain"
	"delivery-driver-service/internal/geo"
	"delivery-driver-service/internal/ports"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
//
// healthCheck may be nil when the delivery source has nothing to probe.
// With a non-nil reg, request and sort cache metrics are served on /metrics.
func NewRouter(
	repo ports.DeliveryRepository,
	sorter *geo.SortCache[*domain.Delivery],
	healthCheck func(ctx context.Context) error,
	reg *prometheus.Registry,
) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Check: healthCheck}
	deliveryHandler := &handlers.DeliveryHandler{Repo: repo, Sorter: sorter}
	distanceHandler := &handlers.DistanceHandler{Calc: sorter.Calculator()}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/deliveries/nearby", deliveryHandler.Nearby)
	mux.HandleFunc("/distance", distanceHandler.Distance)

	var h http.Handler = mux
	if reg != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		h = metricsMiddleware(newMetrics(reg, sorter), mux, mux)
	}

	return requestIDMiddleware(loggingMiddleware(h))
}
