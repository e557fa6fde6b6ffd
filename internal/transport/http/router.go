// Package httptransport assembles the public router. Route registration
// lives with each module's handler; this file only owns the shared
// middleware chain and the operational endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rollcall/internal/platform/metrics"
	"rollcall/internal/platform/middleware"
	"rollcall/internal/transport/http/shared"
)

// Registrar is implemented by module handlers that mount their own routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports liveness of a backing resource.
type HealthChecker func(ctx context.Context) error

// NewRouter wires the shared middleware chain and mounts each module.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, health HealthChecker, modules ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Device)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.Latency(m))

	r.Get("/healthz", handleHealth(health))
	r.Handle("/metrics", promhttp.Handler())

	for _, mod := range modules {
		mod.Register(r)
	}
	return r
}

func handleHealth(health HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health(r.Context()); err != nil {
				shared.WriteJSON(w, http.StatusServiceUnavailable, shared.Envelope{
					Success: false,
					Message: "backing store unavailable",
				})
				return
			}
		}
		shared.WriteSuccess(w, "ok", nil)
	}
}
