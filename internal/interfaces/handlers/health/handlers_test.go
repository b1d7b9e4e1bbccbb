package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"semdex-backend/internal/middleware"
	"semdex-backend/internal/pkg/testdb"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct{ err error }

func (p pinger) Ping() error { return p.err }

func setupHealth(t *testing.T, db pinger) (*fiber.App, *redis.Client) {
	t.Helper()
	rdb, _ := testdb.Redis(t)
	h := &Handlers{Rdb: rdb, DB: db, HealthAdminKey: "admin-key"}
	app := fiber.New()
	app.Get("/", h.Dashboard)
	app.Get("/reset", h.Reset)
	app.Get("/health/json", h.JSON)
	app.Get("/health/errors", h.Errors)
	return app, rdb
}

func TestReset_RequiresKey(t *testing.T) {
	app, _ := setupHealth(t, pinger{})
	for _, path := range []string{"/reset", "/reset?key=wrong"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, path)
	}
}

func TestReset_ClearsCounters(t *testing.T) {
	app, rdb := setupHealth(t, pinger{})
	ctx := context.Background()
	require.NoError(t, rdb.Set(ctx, middleware.KeyReqTotal, 12, 0).Err())
	require.NoError(t, rdb.LPush(ctx, middleware.KeyErrorLog, `{"status":500}`).Err())

	resp, err := app.Test(httptest.NewRequest("GET", "/reset?key=admin-key", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(0), rdb.Exists(ctx, middleware.KeyReqTotal, middleware.KeyErrorLog).Val())
	assert.Equal(t, int64(1), rdb.Exists(ctx, middleware.KeyStartTime).Val())
}

func TestJSON(t *testing.T) {
	app, _ := setupHealth(t, pinger{})
	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "semdex-api", body["service"])
	deps := body["dependencies"].(map[string]interface{})
	assert.Equal(t, "connected", deps["database"].(map[string]interface{})["status"])
	assert.Contains(t, deps, "redis")
}

func TestJSON_DatabaseDown(t *testing.T) {
	app, _ := setupHealth(t, pinger{err: errors.New("connection refused")})
	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	deps := body["dependencies"].(map[string]interface{})
	assert.Equal(t, "error", deps["database"].(map[string]interface{})["status"])
}

func TestErrors(t *testing.T) {
	app, rdb := setupHealth(t, pinger{})
	ctx := context.Background()

	resp, err := app.Test(httptest.NewRequest("GET", "/health/errors", nil))
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `[]`, string(b))

	require.NoError(t, rdb.LPush(ctx, middleware.KeyErrorLog,
		`{"path":"/a","status":500}`, "not json", `{"path":"/b","status":503}`).Err())
	resp, err = app.Test(httptest.NewRequest("GET", "/health/errors", nil))
	require.NoError(t, err)
	var entries []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "/b", entries[0]["path"])
}

func TestDashboard(t *testing.T) {
	app, _ := setupHealth(t, pinger{})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
	b, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(b), "SEMDEX · API Status")
}
