// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package otelslog correlates slog records with the OpenTelemetry span
// active in the logging context.
package otelslog

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Handler adds an "otel" group holding the trace and span ids of the
// current span, if any, to every record before passing it on.
type Handler struct {
	slog.Handler
}

// New returns a logger which correlates records written through it
// with the current span.
func New(h slog.Handler) *slog.Logger {
	return slog.New(Handler{Handler: h})
}

// Handle implements the slog.Handler interface.
func (h Handler) Handle(ctx context.Context, record slog.Record) error {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return h.Handler.Handle(ctx, record)
	}

	r := record.Clone()
	r.AddAttrs(slog.Group(
		"otel",
		slog.String("trace_id", spanCtx.TraceID().String()),
		slog.String("span_id", spanCtx.SpanID().String()),
	))
	return h.Handler.Handle(ctx, r)
}

// WithAttrs implements the slog.Handler interface.
func (h Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return Handler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup implements the slog.Handler interface.
func (h Handler) WithGroup(name string) slog.Handler {
	return Handler{Handler: h.Handler.WithGroup(name)}
}
