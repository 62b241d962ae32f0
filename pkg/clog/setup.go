package clog

import (
	"io"
	"log/slog"
)

// NewHandler returns the colored text handler for local runs and JSON
// everywhere else, wrapped so request attributes reach every record.
func NewHandler(w io.Writer, env string, level slog.Level) slog.Handler {
	var h slog.Handler
	if env == "local" {
		h = NewHTTPTextHandler(w, WithLevel(level))
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return NewAttributesHandler(h)
}
