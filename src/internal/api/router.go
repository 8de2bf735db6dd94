package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maksimkurb/hostfile/src/internal/ratelimit"
)

// RouterOptions selects the optional middleware.
type RouterOptions struct {
	// PrivateOnly rejects clients outside private networks.
	PrivateOnly bool
	// Limiter throttles clients. Nil disables rate limiting.
	Limiter *ratelimit.Limiter
}

// NewRouter creates a new HTTP router with all API endpoints.
func NewRouter(store HostStore, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery)
	r.Use(RequestID)
	r.Use(Logger)
	if opts.PrivateOnly {
		r.Use(PrivateSubnetOnly)
	}
	if opts.Limiter != nil {
		r.Use(RateLimit(opts.Limiter))
	}
	r.Use(JSONContentType)

	h := NewHandler(store)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/entries", h.GetEntries)

		r.Put("/assignments", h.Assign)
		r.Delete("/assignments", h.Unassign)

		r.Get("/hosts/{host}/local", h.GetLocal)

		r.Get("/health", h.CheckHealth)
	})

	return r
}
