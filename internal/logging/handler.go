// Package logging provides a slog handler that tags every record with the
// request and console session it belongs to.
package logging

import (
	"context"
	"io"
	"log/slog"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Attribute keys added by ContextHandler.
const (
	KeyRequestID = "request_id"
	KeyConsoleID = "console_id"
)

type consoleIDKey struct{}

// WithConsoleID returns a context carrying the console session id.
func WithConsoleID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, consoleIDKey{}, id)
}

// ConsoleID returns the console session id stored in ctx, if any.
func ConsoleID(ctx context.Context) string {
	id, _ := ctx.Value(consoleIDKey{}).(string)
	return id
}

// ContextHandler is a slog.Handler that wraps another handler and adds the
// chi request id and the console id found in the record's context.
type ContextHandler struct {
	inner slog.Handler
}

// NewContextHandler wraps inner.
func NewContextHandler(inner slog.Handler) *ContextHandler {
	return &ContextHandler{inner: inner}
}

// New builds the application logger: a text handler at level writing to w,
// wrapped in a ContextHandler.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewContextHandler(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// Enabled implements slog.Handler.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if id := chimw.GetReqID(ctx); id != "" {
			r.AddAttrs(slog.String(KeyRequestID, id))
		}
		if id := ConsoleID(ctx); id != "" {
			r.AddAttrs(slog.String(KeyConsoleID, id))
		}
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{inner: h.inner.WithGroup(name)}
}
