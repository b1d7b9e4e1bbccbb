package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"semdex-backend/internal/config"
	"semdex-backend/internal/middleware"
	"semdex-backend/internal/pkg/metrics"
	"semdex-backend/internal/pkg/testdb"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *redis.Client) {
	t.Helper()
	cfg := &config.Config{
		Env:              "test",
		SessionSecret:    "router-secret",
		HealthAdminKey:   "k",
		MagicLinkBaseURL: "http://localhost:8080/api/v1/auth/magic-link/verify",
		MagicLinkTTL:     15 * time.Minute,
		AutoMigrate:      true,
		SeedOnStart:      true,
	}
	db := testdb.Open(t)
	require.NoError(t, Prepare(context.Background(), cfg, db))
	// a second start must not fail on existing reference data
	require.NoError(t, Prepare(context.Background(), cfg, db))
	rdb, _ := testdb.Redis(t)
	app, err := NewApp(cfg, db, rdb, metrics.New())
	require.NoError(t, err)
	return app, rdb
}

func do(t *testing.T, app *fiber.App, method, path, cookie string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", middleware.SessionCookieName+"="+cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func login(t *testing.T, app *fiber.App, identifier string) string {
	t.Helper()
	resp, _ := do(t, app, "POST", "/api/v1/auth/login", "", map[string]string{"identifier": identifier})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c.Value
		}
	}
	t.Fatal("login did not set a session cookie")
	return ""
}

func TestLoginByEmailOrPhone_SameUser(t *testing.T) {
	app, _ := newTestApp(t)
	ids := map[string]float64{}
	for _, identifier := range []string{"pbernardproxy@gmail.com", "+230 54557219"} {
		cookie := login(t, app, identifier)
		resp, body := do(t, app, "GET", "/api/v1/auth/me", cookie, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		ids[identifier] = body["data"].(map[string]interface{})["user"].(map[string]interface{})["id"].(float64)
	}
	assert.Equal(t, ids["pbernardproxy@gmail.com"], ids["+230 54557219"])

	resp, _ := do(t, app, "POST", "/api/v1/auth/login", "", map[string]string{"identifier": "unknown@x.com"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogTransactionThenRead(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := login(t, app, "audrey.l.brutus@gmail.com")

	resp, created := do(t, app, "POST", "/api/v1/log/transaction", cookie, map[string]interface{}{
		"transactionType": "VIEW",
		"description":     "Viewed sale breakdown",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := created["data"].(map[string]interface{})["id"]

	resp, body := do(t, app, "GET", "/api/v1/dashboard/get-transactions?limit=1", cookie, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, id, row["id"])
	assert.Equal(t, "Marie Audrey Laura Brutus", row["userFullName"])
}

func TestDashboard_SessionGate(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := do(t, app, "GET", "/api/v1/dashboard/get-overview", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "error", body["status"])

	cookie := login(t, app, "pbernardproxy@gmail.com")
	resp, body = do(t, app, "GET", "/api/v1/dashboard/get-overview", cookie, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "MCB Group Ltd", body["data"].(map[string]interface{})["company"])
	assert.NotEmpty(t, resp.Header.Get("X-Trace-Id"))
}

func TestHealthCountsApiTraffic(t *testing.T) {
	app, rdb := newTestApp(t)
	do(t, app, "GET", "/api/v1/auth/me", "", nil)
	do(t, app, "GET", "/health/json", "", nil)

	assert.Equal(t, "1", rdb.Get(context.Background(), middleware.KeyReqTotal).Val())
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	login(t, app, "pbernardproxy@gmail.com")

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	b, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(b), `semdex_logins_total{kind="email",result="success"} 1`)
}

func TestNewApp_WithoutDatabase(t *testing.T) {
	rdb, _ := testdb.Redis(t)
	app, err := NewApp(&config.Config{}, nil, rdb, metrics.New())
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/api/v1/auth/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
