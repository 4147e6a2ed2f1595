package xlog

import (
	"context"
	"log/slog"
)

// DisabledLogger drops every record. It is installed as the default logger
// in quiet mode.
var DisabledLogger = slog.New(disabledHandler{})

type disabledHandler struct{}

func (disabledHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return false
}

func (disabledHandler) Handle(ctx context.Context, record slog.Record) error {
	return nil
}

func (d disabledHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return d
}

func (d disabledHandler) WithGroup(name string) slog.Handler {
	return d
}
