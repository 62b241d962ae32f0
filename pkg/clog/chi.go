package clog

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oklog/ulid/v2"
)

// RequestIDHeader carries the id assigned to each request back to the caller.
const RequestIDHeader = "X-Request-Id"

type chiConfig struct {
	skip func(r *http.Request) bool
}

type ChiOption func(*chiConfig)

// WithChiSkip suppresses the access line for requests matching skip. The
// attribute bag is still attached.
func WithChiSkip(skip func(r *http.Request) bool) ChiOption {
	return func(cfg *chiConfig) {
		cfg.skip = skip
	}
}

// SlogChiMiddleware attaches an attribute bag to the request context and
// writes one access line per request once the handler returns, at a level
// derived from the response status.
func SlogChiMiddleware(opts ...ChiOption) func(http.Handler) http.Handler {
	var cfg chiConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			id := ulid.Make().String()
			w.Header().Set(RequestIDHeader, id)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			ctx := ContextWithSlog(r.Context())
			AddAttributes(ctx, map[string]any{
				"request_id": id,
				"method":     r.Method,
				"path":       r.URL.Path,
			})
			next.ServeHTTP(ww, r.WithContext(ctx))
			if cfg.skip != nil && cfg.skip(r) {
				return
			}

			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					AddAttribute(ctx, "route", pattern)
				}
			}
			AddAttributes(ctx, map[string]any{
				"status":        ww.Status(),
				"bytes_written": ww.BytesWritten(),
				"duration":      time.Since(start),
			})
			slog.Log(ctx, HTTPStatusToLevel(ww.Status()).Slog(), http.StatusText(ww.Status()))
		})
	}
}
