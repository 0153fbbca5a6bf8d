package integration_test

import (
	"net/http"
	"testing"

	"dealflow_backend/internal/config"
	"dealflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthAndDocs(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"database":"up"`)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))

	res, body = ts.SendRequest(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "/matching/swipe")
}

func TestRequestIDIsPropagated(t *testing.T) {
	ts := helpers.NewTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.Server.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-from-proxy")

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "req-from-proxy", res.Header.Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	ts := helpers.NewTestServer(t, func(cfg *config.Config) {
		cfg.Server.AllowedOrigins = []string{"https://app.dealflow.io"}
	})

	preflight := func(origin string) *http.Response {
		req, err := http.NewRequest(http.MethodOptions, ts.Server.URL+"/api/v1/matching/feed", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		res, err := ts.Server.Client().Do(req)
		require.NoError(t, err)
		res.Body.Close()
		return res
	}

	res := preflight("https://app.dealflow.io")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, "https://app.dealflow.io", res.Header.Get("Access-Control-Allow-Origin"))

	res = preflight("https://evil.example")
	assert.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))
}
