package errors

import (
	"context"
	"log/slog"
)

// LogHandler is a Handler that logs errors through slog.
type LogHandler struct {
	// Logger receives the records. Nil means slog.Default().
	Logger *slog.Logger
}

// HandleError logs err at the level Level picks for its kind.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{
		slog.String("op", err.Op),
		slog.String("kind", err.Kind.String()),
	}
	if err.Widget != "" {
		attrs = append(attrs, slog.String("widget", err.Widget))
	}
	if err.Err != nil {
		attrs = append(attrs, slog.Any("err", err.Err))
	}
	logger.Log(context.Background(), Level(err.Kind), "lattice error", attrs...)
}

// Level is the log level for errors of kind k. Recoverable conditions,
// like a stale id or a dropped event backlog, log as warnings.
func Level(k Kind) slog.Level {
	switch k {
	case KindDispatchLoopExceeded, KindUnknownWidget, KindUnknownEditVariable, KindUnknownConstraint:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
