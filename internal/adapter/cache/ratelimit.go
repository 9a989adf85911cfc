package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window limiter shared by every replica:
// INCR a per-window counter and set its expiry on first use.
type RedisRateLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisRateLimiter(client redis.Cmdable, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, limit: limit, window: window, now: time.Now}
}

func (l *RedisRateLimiter) windowKey(key string) string {
	slot := l.now().UnixNano() / int64(l.window)
	return fmt.Sprintf("ratelimit:%s:%d", key, slot)
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.windowKey(key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}

	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, err
		}
	}

	return n <= int64(l.limit), nil
}
