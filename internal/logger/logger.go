package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

var log *slog.Logger

// Init инициализирует глобальный логгер
// env: "development" или "production"
func Init(env string) {
	InitWithLevel(env, "")
}

// InitWithLevel позволяет переопределить уровень из конфига ("debug", "info", "warn", "error")
func InitWithLevel(env, level string) {
	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: env != "development",
	}

	if env == "development" {
		opts.Level = slog.LevelDebug
	}
	if lvl, ok := parseLevel(level); ok {
		opts.Level = lvl
	}

	var handler slog.Handler
	if env == "development" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

// Discard silences logging, used by tests.
func Discard() {
	log = slog.New(slog.NewTextHandler(io.Discard, nil))
	slog.SetDefault(log)
}

func parseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}

// GetLogger возвращает глобальный логгер
func GetLogger() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// HTTPLog пишет access-лог запроса; уровень зависит от статуса
func HTTPLog(ctx context.Context, method, path string, status int, duration time.Duration, size int, args ...any) {
	fields := append([]any{
		"method", method,
		"path", path,
		"status", status,
		"duration_ms", duration.Milliseconds(),
		"size_bytes", size,
	}, args...)

	l := FromContext(ctx)
	switch {
	case status >= 500:
		l.Error("HTTP Server Error", fields...)
	case status >= 400:
		l.Warn("HTTP Client Error", fields...)
	default:
		l.Info("HTTP Request", fields...)
	}
}

// DBLog логирует SQL-операцию вместе с request_id из ctx
func DBLog(ctx context.Context, operation, query string, duration time.Duration, err error) {
	fields := []any{
		"operation", operation,
		"query", query,
		"duration_ms", duration.Milliseconds(),
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		FromContext(ctx).Error("database operation failed", fields...)
		return
	}
	FromContext(ctx).Debug("database operation", fields...)
}
