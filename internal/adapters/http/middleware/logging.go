package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/opscheck/internal/platform/logging"
)

// Logging returns middleware that logs request start and completion events.
// It creates a child logger enriched with the request ID, stores it via
// logging.WithLogger for downstream use, and logs completion with method,
// path, status code, and duration.
//
// Check endpoints are polled by orchestrators, so both events are logged at
// debug level. Check failures are reported by the check controller itself.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			child := logger.With(slog.String("request_id", RequestIDFromContext(ctx)))
			ctx = logging.WithLogger(ctx, child)

			if !child.Enabled(ctx, slog.LevelDebug) {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			child.DebugContext(ctx, "request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			headerAttrs := RedactHeaders(r.Header)
			args := make([]any, 0, len(headerAttrs))
			for _, a := range headerAttrs {
				args = append(args, a)
			}
			child.DebugContext(ctx, "request headers", args...)

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			child.DebugContext(ctx, "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rw.statusCode),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
