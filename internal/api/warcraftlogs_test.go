package api

import (
	"encoding/json"
	"testing"

	"stillnoob/internal/config"

	"github.com/stretchr/testify/require"
)

func TestRateLimitResponseDecode(t *testing.T) {
	payload := `{"rateLimitData":{"limitPerHour":3600,"pointsSpentThisHour":42.5,"pointsResetIn":1800}}`

	var resp rateLimitResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))
	require.Equal(t, 3600, resp.RateLimitData.LimitPerHour)
	require.InDelta(t, 42.5, resp.RateLimitData.PointsSpentThisHour, 0.01)
	require.Equal(t, 1800, resp.RateLimitData.PointsResetIn)
}

func TestRateLimitInfoCache(t *testing.T) {
	c := NewWCLClient(&config.Config{WCLClientID: "id", WCLClientSecret: "secret"})

	c.updateRateLimit(RateLimitInfo{LimitPerHour: 3600, PointsSpentThisHour: 10})
	info := c.GetRateLimitInfo()
	require.Equal(t, 3600, info.LimitPerHour)
	require.InDelta(t, 10, info.PointsSpentThisHour, 0.01)
	require.False(t, info.UpdatedAt.IsZero())
}
