package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"jobboard/internal/observability"
)

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

const DefaultRateLimitPrefix = "jobboard:ratelimit:"

const redisLimitTimeout = 250 * time.Millisecond

// RedisLimiter keeps fixed-window counters in redis so every API instance
// shares them. It lets requests through when redis cannot answer.
type RedisLimiter struct {
	client redis.Scripter
	script *redis.Script
	prefix string
}

func NewRedisLimiter(client redis.Scripter, prefix string) *RedisLimiter {
	if client == nil {
		return nil
	}
	if prefix == "" {
		prefix = DefaultRateLimitPrefix
	}
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(rateLimitScript),
		prefix: prefix,
	}
}

func (l *RedisLimiter) Allow(key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisLimitTimeout)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{l.prefix + key}, ttl, limit).Int64()
	if err != nil {
		observability.Default().WithError(err).WithFields(map[string]any{"key": key}).Warn("rate limiter unavailable, allowing request")
		return true
	}
	return allowed == 1
}
