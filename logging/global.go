// Package logging wires log/slog to the console and to a weekly rotating
// JSON file, and exposes package-level helpers used across the service.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Options configures InitLogger.
type Options struct {
	Dir            string
	Level          string
	RetentionWeeks int
	MaxFileSize    int64
	Console        io.Writer
}

type LoggingService struct {
	Logger *slog.Logger
	writer *RotatingWriter
}

var (
	DefaultLoggingService *LoggingService
	fallbackOnce          sync.Once
	fallbackLogger        *slog.Logger
)

// ParseLevel converts a LOG_LEVEL value to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitLogger installs the global logger: text on the console at the
// configured level, JSON in the rotating file at debug level. If the log
// directory cannot be used, logging continues on the console only.
func InitLogger(opts Options) *LoggingService {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	level := ParseLevel(opts.Level)

	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: level}),
	}

	svc := &LoggingService{}
	if opts.Dir != "" {
		writer, err := NewRotatingWriter(opts.Dir, opts.RetentionWeeks, opts.MaxFileSize)
		if err != nil {
			slog.New(handlers[0]).Error("File logging disabled", "dir", opts.Dir, "error", err)
		} else {
			svc.writer = writer
			handlers = append(handlers, slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
	}

	svc.Logger = slog.New(&fanoutHandler{handlers: handlers})
	DefaultLoggingService = svc
	slog.SetDefault(svc.Logger)
	return svc
}

// Close flushes and closes the rotating file, if any.
func (s *LoggingService) Close() error {
	if s == nil || s.writer == nil {
		return nil
	}
	return s.writer.Close()
}

// Logger returns the global logger, or a stderr fallback when InitLogger was
// never called.
func Logger() *slog.Logger {
	if DefaultLoggingService != nil && DefaultLoggingService.Logger != nil {
		return DefaultLoggingService.Logger
	}
	fallbackOnce.Do(func() {
		fallbackLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	})
	return fallbackLogger
}

func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}
