package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dealflow_backend/internal/app"
	"dealflow_backend/internal/config"
	"dealflow_backend/internal/email"
	"dealflow_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "integration-test-secret"

type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	App    *app.App
	Mail   *email.LogProvider
}

// NewTestServer поднимает приложение целиком поверх отдельной sqlite-базы.
// Письма складываются в Mail, сервер и ws-менеджер закрываются в t.Cleanup.
func NewTestServer(t *testing.T, mutate ...func(*config.Config)) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := NewTestDB(t)

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Database.Driver = "sqlite"
	cfg.JWT.Secret = testJWTSecret
	for _, m := range mutate {
		m(cfg)
	}

	templates, err := email.NewDefaultTemplates()
	require.NoError(t, err)
	mail := email.NewLogProvider(templates)

	ctx, cancel := context.WithCancel(context.Background())
	application, err := app.SetupRouter(ctx, cfg, db, app.Overrides{Email: mail})
	require.NoError(t, err, "Не удалось собрать приложение")

	server := httptest.NewServer(application.Router)
	t.Cleanup(func() {
		server.Close()
		cancel()
	})

	return &TestServer{
		Server: server,
		DB:     db,
		App:    application,
		Mail:   mail,
	}
}

// Token выпускает bearer-токен для пользователя
func (ts *TestServer) Token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := ts.App.Tokens.Generate(user.ID, user.UserType)
	require.NoError(t, err)
	return token
}

// WSURL - адрес /ws с токеном в query
func (ts *TestServer) WSURL(token string) string {
	return "ws" + strings.TrimPrefix(ts.Server.URL, "http") + "/ws?token=" + token
}

func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Ошибка кодирования JSON для запроса")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err, "Ошибка создания HTTP-запроса")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "Ошибка отправки HTTP-запроса")
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	require.NoError(t, err, "Ошибка чтения тела ответа")

	return res, string(resBodyBytes)
}

// DecodeJSON разбирает тело ответа в out
func DecodeJSON(t *testing.T, body string, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), out), "Body: "+body)
}
