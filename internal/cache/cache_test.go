package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCache_SetGetExpire(t *testing.T) {
	c := New(true)
	t.Cleanup(c.Close)

	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	etag := c.Set("sc", []byte(`{"a":1}`), time.Minute)
	data, got, ok := c.Get("sc")
	require.True(t, ok)
	require.Equal(t, etag, got)
	require.Equal(t, `{"a":1}`, string(data))

	now = now.Add(2 * time.Minute)
	_, _, ok = c.Get("sc")
	require.False(t, ok)

	stats := c.Stats()
	require.Equal(t, 1, stats["total_keys"])
	require.Equal(t, 1, stats["expired_keys"])

	c.evict()
	require.Equal(t, 0, c.Stats()["total_keys"])
}

func TestCache_Disabled(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("v"), time.Hour)
	require.Equal(t, ComputeETag([]byte("v")), etag)
	_, _, ok := c.Get("k")
	require.False(t, ok)
	c.Close()
	c.Close()
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("x"))
	require.True(t, CheckETagMatch(etag, etag))
	require.True(t, CheckETagMatch("*", etag))
	require.False(t, CheckETagMatch("", etag))
	require.False(t, CheckETagMatch(`W/"other"`, etag))
}
