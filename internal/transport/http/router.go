// Package httptransport is the operational HTTP surface: health, metrics and
// the delivery channel's inbound message callback. Conversational rendering
// lives in the engine, not here.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mamacare/internal/platform/middleware"
)

// NewRouter wires all public endpoints. inboundToken guards the message
// callback; empty disables the check.
func NewRouter(h *Handler, inboundToken string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.With(middleware.RequireToken(inboundToken, h.logger)).Post("/inbound", h.handleInbound)

	return r
}
