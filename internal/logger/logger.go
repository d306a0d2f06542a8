// Package logger provides the structured logger shared by domassert packages.
//
// The library logs at debug level only, so test output stays quiet unless
// DOMASSERT_DEBUG is set or the CLI passes --debug.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
)

// EnvDebug enables debug logging when set to a true value.
const EnvDebug = "DOMASSERT_DEBUG"

var (
	defaultLogger *slog.Logger
	mu            sync.RWMutex
)

func init() {
	debug, _ := strconv.ParseBool(os.Getenv(EnvDebug))
	Init(Options{Debug: debug})
}

// Options configures the logger.
type Options struct {
	Debug  bool         // Enable debug level logging
	Quiet  bool         // Only show errors
	JSON   bool         // Output as JSON
	Output io.Writer    // Output destination (default: stderr)
	Logger *slog.Logger // Custom logger (overrides all other options)
}

// Init replaces the package logger.
func Init(opts Options) {
	var l *slog.Logger
	if opts.Logger != nil {
		l = opts.Logger
	} else {
		l = slog.New(newHandler(opts))
	}

	mu.Lock()
	defaultLogger = l
	mu.Unlock()
}

func newHandler(opts Options) slog.Handler {
	level := slog.LevelInfo
	switch {
	case opts.Quiet:
		level = slog.LevelError
	case opts.Debug:
		level = slog.LevelDebug
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if opts.JSON {
		return slog.NewJSONHandler(output, handlerOpts)
	}
	return slog.NewTextHandler(output, handlerOpts)
}

// SetLogger routes domassert logs through l.
func SetLogger(l *slog.Logger) {
	Init(Options{Logger: l})
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// Enabled reports whether messages at level would be written.
func Enabled(level slog.Level) bool {
	return current().Enabled(context.Background(), level)
}

func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// With returns a logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return current().With(args...)
}

func DebugContext(ctx context.Context, msg string, args ...any) {
	current().DebugContext(ctx, msg, args...)
}

func InfoContext(ctx context.Context, msg string, args ...any) {
	current().InfoContext(ctx, msg, args...)
}

func ErrorContext(ctx context.Context, msg string, args ...any) {
	current().ErrorContext(ctx, msg, args...)
}
