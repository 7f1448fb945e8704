package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bhushanhacker007/solar-burji-app/internal/config"
	"github.com/bhushanhacker007/solar-burji-app/internal/database"
	"github.com/bhushanhacker007/solar-burji-app/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testKey = "s3cret-key"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{Address: "127.0.0.1", Port: 8080, Mode: gin.TestMode},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			Path:   filepath.Join(t.TempDir(), "router.db"),
		},
		Auth: config.AuthConfig{APIKey: testKey},
		App:  config.AppSubConfig{Timezone: "UTC", CORSOrigins: []string{"*"}},
	}
}

func setupRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	db, err := database.Init(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	r, err := SetupRouter(cfg, db, zap.NewNop())
	require.NoError(t, err)
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPIKey(t *testing.T) {
	r := setupRouter(t, testConfig(t))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/sales", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/api/sales", nil)
	req.Header.Set(middleware.APIKeyHeader, "wrong")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/sales", nil)
	req.Header.Set(middleware.APIKeyHeader, testKey)
	assert.Equal(t, http.StatusOK, serve(r, req).Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/solar?api_key="+testKey, nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKey_RejectedWriteLeavesNoRow(t *testing.T) {
	r := setupRouter(t, testConfig(t))

	body := `{"txn_date":"2024-03-01","amount":5,"payment_method":"cash"}`
	w := serve(r, httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(body)))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/sales?start_date=2024-03-01&end_date=2024-03-01", nil)
	req.Header.Set(middleware.APIKeyHeader, testKey)
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"transactions":[]`)
}

func TestAPIKey_BcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-key"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.Auth = config.AuthConfig{APIKey: testKey, APIKeyHash: string(hash)}
	r := setupRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/borrowings", nil)
	req.Header.Set(middleware.APIKeyHeader, "hashed-key")
	assert.Equal(t, http.StatusOK, serve(r, req).Code)

	// the hash takes precedence over the plain key
	req = httptest.NewRequest(http.MethodGet, "/api/borrowings", nil)
	req.Header.Set(middleware.APIKeyHeader, testKey)
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
}

func TestPreflight(t *testing.T) {
	r := setupRouter(t, testConfig(t))

	req := httptest.NewRequest(http.MethodOptions, "/api/sales", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type,x-api-key")
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	// bare OPTIONS without CORS headers still needs no key
	w = serve(r, httptest.NewRequest(http.MethodOptions, "/api/solar", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestIndexAndHealth(t *testing.T) {
	r := setupRouter(t, testConfig(t))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var idx struct {
		Name      string   `json:"name"`
		Status    string   `json:"status"`
		Endpoints []string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &idx))
	assert.Equal(t, "Solar & Burji API", idx.Name)
	assert.Equal(t, "ok", idx.Status)
	assert.ElementsMatch(t, []string{"/api/solar", "/api/sales", "/api/borrowings"}, idx.Endpoints)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestLegacyPaths(t *testing.T) {
	r := setupRouter(t, testConfig(t))

	body := `{"reading_date":"2024-02-29","generation_kwh":4.2}`
	req := httptest.NewRequest(http.MethodPost, "/backend/api/solar.php", strings.NewReader(body))
	req.Header.Set(middleware.APIKeyHeader, testKey)
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/solar?period=month&date=2024-02-10", nil)
	req.Header.Set(middleware.APIKeyHeader, testKey)
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"range":{"start":"2024-02-01","end":"2024-02-29"}`)
	assert.Contains(t, w.Body.String(), `"total_generation_kwh":4.200`)
}

func TestSetupRouter_BadTimezone(t *testing.T) {
	cfg := testConfig(t)
	cfg.App.Timezone = "Mars/Olympus"
	_, err := SetupRouter(cfg, nil, zap.NewNop())
	assert.Error(t, err)
}
