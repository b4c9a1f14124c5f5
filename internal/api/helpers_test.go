package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"resumeapi/internal/auth"
	"resumeapi/internal/config"
	"resumeapi/internal/controller"
	"resumeapi/internal/database"
)

type testServer struct {
	router *gin.Engine
	auth   *controller.AuthController
	db     *gorm.DB
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"), discardLogger(), logger.Silent)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

func newTestServerWith(t *testing.T, db *gorm.DB, media MediaDeps, cfg config.ResumeConfig) *testServer {
	t.Helper()
	svc, err := auth.NewAuthService("test-secret", "HS256", 15*time.Minute)
	require.NoError(t, err)

	authController := controller.NewAuthController(db, svc, discardLogger())
	resumeController := controller.NewResumeController(db, nil, discardLogger())

	router := NewRouter(&config.Config{}, discardLogger())
	RegisterRoutes(router, Services{
		Auth:   authController,
		Resume: resumeController,
		Media:  media,
		Config: cfg,
		Logger: discardLogger(),
	})
	return &testServer{router: router, auth: authController, db: db}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, newTestDB(t), MediaDeps{}, config.ResumeConfig{})
}

// createUser stores an account and returns a bearer token for it.
func (s *testServer) createUser(t *testing.T, username, password string, disabled bool) string {
	t.Helper()
	_, err := s.auth.CreateUser(context.Background(), username, password, disabled)
	require.NoError(t, err)
	token, err := s.auth.CreateAccessToken(username, 0)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) doJSON(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = strings.NewReader(string(raw))
	}
	return s.do(method, path, token, body, "application/json")
}

func (s *testServer) postToken(username, password string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {password}}
	return s.do(http.MethodPost, "/token", "", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
