// Package http provides the inbound HTTP binding of the check controllers:
// routing and server lifecycle. The core check packages expose no listener.
package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/opscheck/internal/adapters/http/dto"
	"github.com/jsamuelsen11/opscheck/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/opscheck/internal/domain"
)

var errMethodNotAllowed = errors.New("method not allowed")

// NewRouter creates an HTTP handler serving the liveness, health, and
// readiness endpoints. Middleware is applied globally in the order given.
//
//	GET /live
//	GET /health         GET /health/{group}
//	GET /ready          GET /ready/{group}
func NewRouter(
	health *handlers.ChecksHandler,
	ready *handlers.ChecksHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		dto.WriteErrorResponse(w, r, domain.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		dto.WriteErrorResponseWithStatus(w, r, errMethodNotAllowed, http.StatusMethodNotAllowed)
	})

	r.Get("/live", handlers.Liveness)

	r.Get("/health", health.Evaluate)
	r.Get("/health/{"+handlers.GroupParam+"}", health.EvaluateGroup)

	r.Get("/ready", ready.Evaluate)
	r.Get("/ready/{"+handlers.GroupParam+"}", ready.EvaluateGroup)

	return r
}
