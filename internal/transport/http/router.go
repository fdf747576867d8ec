// Package http assembles the HTTP surface: route registration, shared
// middleware, and the operational endpoints.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Eklavvyaaaaa/Carbonx/internal/platform/metrics"
	"github.com/Eklavvyaaaaa/Carbonx/internal/platform/middleware"
	"github.com/Eklavvyaaaaa/Carbonx/internal/transport/http/shared"
)

// Registrar mounts a feature's routes onto the router.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter builds the service router with the standard middleware chain
// and mounts every feature handler plus the health and metrics endpoints.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, handlers ...Registrar) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(m))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		for _, h := range handlers {
			h.Register(r)
		}
	})

	return r
}
