// Package log builds the application's slog.Logger and the frame logger.
//
// Without a log file, records below error go to stdout and errors go to
// stderr. With a log file, everything goes to the file and to stderr.
package log

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
)

// LevelTrace sits below debug and enables frame dumps.
const LevelTrace slog.Level = -8

// Config holds the logging flags shared by all commands.
type Config struct {
	Level   string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"SERIALPAD_LOG_LEVEL"`
	File    string `help:"Write logs to this file" env:"SERIALPAD_LOG_FILE"`
	RawFile string `help:"Dump every frame written to the serial port into this file" env:"SERIALPAD_LOG_RAW_FILE"`
}

func ParseLevel(s string) slog.Level {
	switch s {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fanout passes each record to every handler that accepts it.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// below drops records at or above max.
type below struct {
	max slog.Level
	slog.Handler
}

func (b below) Enabled(ctx context.Context, level slog.Level) bool {
	return level < b.max && b.Handler.Enabled(ctx, level)
}

func (b below) WithAttrs(attrs []slog.Attr) slog.Handler {
	return below{max: b.max, Handler: b.Handler.WithAttrs(attrs)}
}

func (b below) WithGroup(name string) slog.Handler {
	return below{max: b.max, Handler: b.Handler.WithGroup(name)}
}

// SetupLogger creates the logger described by cfg and installs it as the
// slog default. The returned closers must be closed on exit.
func SetupLogger(cfg Config) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handlers fanout
	var closers []io.Closer
	if cfg.File == "" {
		handlers = append(handlers,
			below{max: slog.LevelError, Handler: slog.NewTextHandler(os.Stdout, opts)},
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}),
		)
	} else {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, f)
		handlers = append(handlers,
			slog.NewTextHandler(os.Stderr, opts),
			slog.NewTextHandler(f, opts),
		)
	}

	logger := slog.New(handlers)
	slog.SetDefault(logger)
	return logger, closers, nil
}
