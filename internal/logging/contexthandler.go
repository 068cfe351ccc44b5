// Package logging carries request-scoped [slog.Attr] in a [context.Context] so that every log line of a
// command is tagged without passing loggers around.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
)

type attrsKey struct{}

// ContextHandler adds the attributes stored with [WithAttrs] to every record before passing it on.
type ContextHandler struct {
	next slog.Handler
}

func NewContextHandler(next slog.Handler) *ContextHandler {
	return &ContextHandler{next: next}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(attrsFrom(ctx)...)
	if err := h.next.Handle(ctx, r); err != nil {
		return fmt.Errorf("handle log record: %w", err)
	}
	return nil
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name)}
}

// WithAttrs returns a copy of ctx whose log records also carry attrs.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	// Concat copies so that sibling contexts never share a backing array.
	return context.WithValue(ctx, attrsKey{}, slices.Concat(attrsFrom(ctx), attrs))
}

func attrsFrom(ctx context.Context) []slog.Attr {
	attrs, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	return attrs
}
