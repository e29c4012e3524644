package ratelimit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter shares one counter per key across processes. The window
// boundary is the first request, same as MemoryLimiter: the TTL is set
// only when the key has none yet.
type RedisLimiter struct {
	client *redis.Client
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, p Policy) (bool, error) {
	redisKey := "ratelimit:" + key

	// INCR and EXPIRE run in one MULTI/EXEC so a key can never be left
	// counting without a TTL.
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, p.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("ratelimit: incr %s: %w", key, err)
	}

	return incr.Val() <= int64(p.Max), nil
}
