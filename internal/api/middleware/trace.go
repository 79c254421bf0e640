// Package middleware holds HTTP middleware for the API.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/victorward/dailytarot/internal/api/shared"
	"github.com/victorward/dailytarot/internal/platform/logger"
)

// Trace attaches a trace ID to each request's context and a trace-scoped
// logger for downstream handlers. Apply early in the chain so every
// handler and error response can correlate.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		log := slog.With(slog.String("trace_id", shared.GetTraceID(ctx)))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
