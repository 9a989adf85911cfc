package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemoryCache_TTLAndSweep(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache()
	c.now = clock.now
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "role:a", "USER", time.Minute))
	require.NoError(t, c.Set(ctx, "role:b", "ADMIN", time.Hour))

	v, ok, err := c.Get(ctx, "role:a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "USER", v)

	clock.advance(2 * time.Minute)

	_, ok, _ = c.Get(ctx, "role:a")
	assert.False(t, ok)

	removed, err := c.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, ok, _ = c.Get(ctx, "role:b")
	assert.True(t, ok)

	require.NoError(t, c.Delete(ctx, "role:b"))
	_, ok, _ = c.Get(ctx, "role:b")
	assert.False(t, ok)
}

func TestRedisCache(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	c := NewRedisCache(db, "hb:")
	ctx := context.Background()

	mockRedis.ExpectSet("hb:role:a", "DIETITIAN", time.Minute).SetVal("OK")
	mockRedis.ExpectGet("hb:role:a").SetVal("DIETITIAN")
	mockRedis.ExpectGet("hb:role:missing").RedisNil()
	mockRedis.ExpectGet("hb:role:broken").SetErr(errors.New("connection refused"))
	mockRedis.ExpectDel("hb:role:a").SetVal(1)

	require.NoError(t, c.Set(ctx, "role:a", "DIETITIAN", time.Minute))

	v, ok, err := c.Get(ctx, "role:a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "DIETITIAN", v)

	_, ok, err = c.Get(ctx, "role:missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = c.Get(ctx, "role:broken")
	assert.Error(t, err)

	require.NoError(t, c.Delete(ctx, "role:a"))
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestRedisRateLimiter(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	now := time.Date(2026, 1, 1, 0, 0, 30, 0, time.UTC)
	l := NewRedisRateLimiter(db, 2, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	key := fmt.Sprintf("ratelimit:user-1:%d", now.UnixNano()/int64(time.Minute))

	mockRedis.ExpectIncr(key).SetVal(1)
	mockRedis.ExpectExpire(key, time.Minute).SetVal(true)
	mockRedis.ExpectIncr(key).SetVal(2)
	mockRedis.ExpectIncr(key).SetVal(3)

	ok, err := l.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mockRedis.ExpectationsWereMet())
}
