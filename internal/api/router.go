package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/ppiankov/evadvisor/internal/worker"
)

// RateLimit returns middleware that rejects clients over their budget
func RateLimit(limiter *worker.Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := worker.ClientKey(r)
			if !limiter.Allow(key) {
				logger.Warn("Rate limit exceeded", "client", key, "path", r.URL.Path)
				w.Header().Set("Retry-After", "1")
				Error(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewRouter wires middleware and routes
func NewRouter(h *Handler, limiter *worker.Limiter) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	if limiter != nil {
		r.Use(RateLimit(limiter, h.logger))
	}

	h.RegisterRoutes(r)

	return r
}
