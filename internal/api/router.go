// Package api exposes the assistant over a small REST surface.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lotomania/internal/assistant"
	"lotomania/internal/metrics"
)

// handler bundles HTTP endpoints for the assistant.
type handler struct {
	assistant *assistant.Assistant
}

// NewRouter returns the chi router serving the REST API and /metrics.
func NewRouter(a *assistant.Assistant) http.Handler {
	h := &handler{assistant: a}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.InstrumentHandler)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/healthz", h.health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/results", func(r chi.Router) {
		r.Get("/latest", h.latestResult)
		r.Get("/{contest}", h.resultByContest)
	})

	r.Route("/games", func(r chi.Router) {
		r.Post("/generate", h.generate)
		r.Post("/check", h.check)
		r.Post("/export", h.export)
	})

	return r
}
