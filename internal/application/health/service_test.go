package health

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping() error { return f.err }

func TestCollectHealth_WithNilRedis(t *testing.T) {
	ctx := context.Background()
	result := CollectHealth(ctx, nil, nil)
	assert.Equal(t, "issue", result.Status)
	assert.Equal(t, "disconnected", result.Dependencies["database"].Status)
	assert.Equal(t, "disconnected", result.Dependencies["redis"].Status)
	assert.NotEmpty(t, result.Runtime.GoVersion)
	assert.Equal(t, 0, result.Traffic.TotalRequests)
	assert.Len(t, result.Dependencies, 2)
}

func TestCollectHealth_WithMiniredis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	result := CollectHealth(ctx, rdb, fakePinger{})
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "connected", result.Dependencies["redis"].Status)
	assert.Equal(t, "connected", result.Dependencies["database"].Status)
	assert.Equal(t, 0, result.Traffic.TotalRequests)
	assert.Equal(t, "100", result.Traffic.SuccessRate)

	require.NoError(t, rdb.Set(ctx, "health:global:req_total", "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, "health:global:req_errors", "2", 0).Err())
	require.NoError(t, rdb.Set(ctx, "health:global:res_time_total", "150.5", 0).Err())
	require.NoError(t, rdb.Set(ctx, "health:global:res_count", "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, "health:global:start_time", "1000000", 0).Err())

	result2 := CollectHealth(ctx, rdb, nil)
	assert.Equal(t, 10, result2.Traffic.TotalRequests)
	assert.Equal(t, 2, result2.Traffic.FailedCount)
	assert.Equal(t, 8, result2.Traffic.SuccessCount)
	assert.Equal(t, "80.0", result2.Traffic.SuccessRate)
	assert.Equal(t, "15.05", result2.Traffic.AvgResponseTime)
}

func TestCollectHealth_DatabaseError(t *testing.T) {
	result := CollectHealth(context.Background(), nil, fakePinger{err: errors.New("down")})
	assert.Equal(t, "error", result.Dependencies["database"].Status)
	assert.Nil(t, result.Dependencies["database"].PingMs)
	assert.Equal(t, "issue", result.Status)
}

func TestRenderDashboardHTML(t *testing.T) {
	ms := int64(3)
	html := RenderDashboardHTML(CollectResult{
		Status: "ok",
		Traffic: TrafficInfo{
			TotalRequests: 4, SuccessCount: 4, SuccessRate: "100", AvgResponseTime: "1.50",
			LastRequest: map[string]interface{}{"method": "GET", "path": "/api/v1/<x>", "ip": "1.1.1.1"},
		},
		Runtime:      RuntimeInfo{UptimeSeconds: 90061},
		Dependencies: map[string]DepStatus{"database": {Status: "connected", PingMs: &ms}, "redis": {Status: "error"}},
	})
	assert.Contains(t, html, "SEMDEX · API Status")
	assert.Contains(t, html, "All Systems Operational")
	assert.Contains(t, html, "1d 1h 1m")
	assert.Contains(t, html, "/api/v1/&lt;x&gt;")
	assert.Contains(t, html, "3 ms")

	issue := RenderDashboardHTML(CollectResult{Status: "issue", Dependencies: map[string]DepStatus{}})
	assert.Contains(t, issue, "System Issues Detected")
}
