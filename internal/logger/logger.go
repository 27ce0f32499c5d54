package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Initialize sets up the global logger with the specified level and format.
// JSON format implies production redaction (see Redact).
func Initialize(level, format string) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
		production = true
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
		production = false
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Get returns the default logger
func Get() *slog.Logger {
	if defaultLogger == nil {
		Initialize("info", "text")
	}
	return defaultLogger
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Get().Debug(msg, Redact(args)...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Get().Info(msg, Redact(args)...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Get().Warn(msg, Redact(args)...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Get().Error(msg, Redact(args)...)
}

// InfoContext logs an info message with context
func InfoContext(ctx context.Context, msg string, args ...any) {
	Get().InfoContext(ctx, msg, Redact(args)...)
}

// ErrorContext logs an error message with context
func ErrorContext(ctx context.Context, msg string, args ...any) {
	Get().ErrorContext(ctx, msg, Redact(args)...)
}

// WithOperation returns a logger with the operation tag attached.
func WithOperation(operation string) *slog.Logger {
	return Get().With("operation", operation)
}

// DatabaseResult logs a database operation result.
func DatabaseResult(operation string, rowsAffected int64, err error, args ...any) {
	allArgs := append([]any{"operation", operation, "rows_affected", rowsAffected}, args...)
	if err != nil {
		allArgs = append(allArgs, "error", err)
		Get().Error("database call failed", allArgs...)
	} else {
		Get().Debug("database call succeeded", allArgs...)
	}
}

// ExternalServiceResult logs an external service call result.
func ExternalServiceResult(service, operation string, err error, args ...any) {
	allArgs := append([]any{"service", service, "operation", operation}, args...)
	if err != nil {
		allArgs = append(allArgs, "error", err)
		Get().Error("external service call failed", allArgs...)
	} else {
		Get().Debug("external service call succeeded", allArgs...)
	}
}
