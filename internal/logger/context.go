package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{ name string }

var (
	requestIDKey     = ctxKey{"request_id"}
	userIDKey        = ctxKey{"user_id"}
	correlationIDKey = ctxKey{"correlation_id"}
)

// порядок атрибутов в записи лога
var ctxKeys = []ctxKey{requestIDKey, correlationIDKey, userIDKey}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// WithCorrelationID - сквозной id цепочки запросов, приходит от клиента или прокси
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

func GetRequestID(ctx context.Context) string     { return stringValue(ctx, requestIDKey) }
func GetUserID(ctx context.Context) string        { return stringValue(ctx, userIDKey) }
func GetCorrelationID(ctx context.Context) string { return stringValue(ctx, correlationIDKey) }

func stringValue(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

// FromContext возвращает глобальный логгер с request_id, correlation_id и user_id из ctx
func FromContext(ctx context.Context) *slog.Logger {
	l := GetLogger()
	var attrs []any
	for _, key := range ctxKeys {
		if v := stringValue(ctx, key); v != "" {
			attrs = append(attrs, key.name, v)
		}
	}
	if len(attrs) == 0 {
		return l
	}
	return l.With(attrs...)
}

func CtxDebug(ctx context.Context, msg string, args ...any) { FromContext(ctx).Debug(msg, args...) }
func CtxInfo(ctx context.Context, msg string, args ...any)  { FromContext(ctx).Info(msg, args...) }
func CtxWarn(ctx context.Context, msg string, args ...any)  { FromContext(ctx).Warn(msg, args...) }
func CtxError(ctx context.Context, msg string, args ...any) { FromContext(ctx).Error(msg, args...) }

// CtxWithError - Error с полем error впереди остальных
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append([]any{"error", err.Error()}, args...)
	}
	FromContext(ctx).Error(msg, args...)
}
