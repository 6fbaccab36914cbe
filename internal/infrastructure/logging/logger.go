package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/abcall/clients/internal/core/dispatch"
	"github.com/abcall/clients/internal/core/domain"
)

// Options configures the process logger.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	File   string // empty logs to stderr
}

// New builds a slog logger. The returned closer releases the log file, if any.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = f
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "text":
		handler = slog.NewTextHandler(out, handlerOpts)
	case "json":
		handler = slog.NewJSONHandler(out, handlerOpts)
	default:
		closer.Close()
		return nil, nil, fmt.Errorf("unknown log format: %s", opts.Format)
	}

	return slog.New(handler).With("service", "clients"), closer, nil
}

// ParseLevel converts a config level name to a slog level. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// DispatchObserver logs every dispatched command and query.
// Expected outcomes (not found, validation) are logged at info; other failures at error.
func DispatchObserver(logger *slog.Logger) dispatch.Observer {
	return dispatch.ObserverFunc(func(ctx context.Context, kind dispatch.Kind, name string, elapsed time.Duration, err error) {
		attrs := []any{
			"kind", string(kind),
			"message", name,
			"duration_ms", elapsed.Milliseconds(),
		}

		switch {
		case err == nil:
			logger.DebugContext(ctx, "dispatch completed", attrs...)
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrValidation):
			logger.InfoContext(ctx, "dispatch rejected", append(attrs, "error", err)...)
		default:
			logger.ErrorContext(ctx, "dispatch failed", append(attrs, "error", err)...)
		}
	})
}
