// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package log

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey string

const (
	slogFields      ctxKey = "slog_fields"
	logLevelDefault        = slog.LevelInfo
)

// contextHandler decorates an slog.Handler with attributes carried in
// the request context.
type contextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the Record before calling the
// underlying handler.
func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		for _, v := range attrs {
			r.AddAttrs(v)
		}
	}

	return h.Handler.Handle(ctx, r)
}

// AppendCtx adds an slog attribute to the provided context so that it will be
// included in any Record created with such context.
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	if v, ok := parent.Value(slogFields).([]slog.Attr); ok {
		v = append(v, attr)
		return context.WithValue(parent, slogFields, v)
	}

	return context.WithValue(parent, slogFields, []slog.Attr{attr})
}

// InitStructuredLogConfig sets the structured log behavior from the
// LOG_LEVEL and LOG_ADD_SOURCE environment variables.
func InitStructuredLogConfig() {
	options := &slog.HandlerOptions{
		Level: logLevelDefault,
	}

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		options.Level = slog.LevelDebug
	case "info":
		options.Level = slog.LevelInfo
	case "warn":
		options.Level = slog.LevelWarn
	case "error":
		options.Level = slog.LevelError
	}

	if os.Getenv("LOG_ADD_SOURCE") == "true" {
		options.AddSource = true
	}

	handler := contextHandler{slog.NewJSONHandler(os.Stdout, options)}
	slog.SetDefault(slog.New(handler))
}
