package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureJSON(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := log
	buf := &bytes.Buffer{}
	log = slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { log = prev })
	return buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &rec))
	return rec
}

func TestHTTPLog_LevelAndContextFields(t *testing.T) {
	buf := captureJSON(t)

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithCorrelationID(ctx, "chain-1")
	ctx = WithUserID(ctx, "user-1")

	tests := []struct {
		status int
		level  string
		msg    string
	}{
		{200, "INFO", "HTTP Request"},
		{404, "WARN", "HTTP Client Error"},
		{503, "ERROR", "HTTP Server Error"},
	}
	for _, tt := range tests {
		HTTPLog(ctx, "GET", "/api/v1/matching/feed", tt.status, 15*time.Millisecond, 120, "client_ip", "10.0.0.1")

		rec := lastRecord(t, buf)
		assert.Equal(t, tt.level, rec["level"])
		assert.Equal(t, tt.msg, rec["msg"])
		assert.Equal(t, "req-1", rec["request_id"])
		assert.Equal(t, "chain-1", rec["correlation_id"])
		assert.Equal(t, "user-1", rec["user_id"])
		assert.Equal(t, float64(tt.status), rec["status"])
		assert.Equal(t, float64(15), rec["duration_ms"])
		assert.Equal(t, "10.0.0.1", rec["client_ip"])
	}
}

func TestFromContext_EmptyContext(t *testing.T) {
	buf := captureJSON(t)

	CtxWithError(context.Background(), "boom", assert.AnError, "k", "v")

	rec := lastRecord(t, buf)
	assert.Equal(t, assert.AnError.Error(), rec["error"])
	assert.Equal(t, "v", rec["k"])
	assert.NotContains(t, rec, "request_id")
	assert.NotContains(t, rec, "correlation_id")
}
