package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Warn(format string, v ...interface{}) {}

func newTestCache(t *testing.T) (*AvailabilityCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})

	return New(client, time.Minute, nopLogger{}), srv
}

func TestAvailabilityCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	payload := []byte(`{"slots":[]}`)
	c.Set(ctx, 1, "2024-06-07", "step", payload)

	got, ok := c.Get(ctx, 1, "2024-06-07", "step")
	require.True(t, ok)
	assert.Equal(t, payload, got)

	// Другая сетка и другая дата - промах
	_, ok = c.Get(ctx, 1, "2024-06-07", "hourly")
	assert.False(t, ok)
	_, ok = c.Get(ctx, 1, "2024-06-08", "step")
	assert.False(t, ok)
}

func TestAvailabilityCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, 1, "2024-06-07", "step", []byte("a"))
	c.Set(ctx, 1, "2024-06-07", "hourly", []byte("b"))
	c.Set(ctx, 1, "2024-06-08", "step", []byte("c"))

	c.Invalidate(ctx, 1, "2024-06-07")

	_, ok := c.Get(ctx, 1, "2024-06-07", "step")
	assert.False(t, ok)
	_, ok = c.Get(ctx, 1, "2024-06-07", "hourly")
	assert.False(t, ok)

	// Соседняя дата не затронута
	_, ok = c.Get(ctx, 1, "2024-06-08", "step")
	assert.True(t, ok)
}

func TestAvailabilityCache_TTL(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, 1, "2024-06-07", "step", []byte("a"))

	srv.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, 1, "2024-06-07", "step")
	assert.False(t, ok)
}
