package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Keys follow ratelimit:{subject}:{action} with the window as TTL.

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
	Limit     int
}

type RateLimiter struct {
	client goredis.Scripter
	config RateLimitConfig
}

var fixedWindow = goredis.NewScript(`
	local current = tonumber(redis.call('GET', KEYS[1]) or '0')
	local limit = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])

	local ttl = redis.call('TTL', KEYS[1])
	if ttl < 0 then
		ttl = window
	end

	if current < limit then
		redis.call('INCR', KEYS[1])
		redis.call('EXPIRE', KEYS[1], ttl)
		return {1, limit - current - 1, ttl}
	end
	return {0, 0, ttl}
`)

func NewRateLimiter(client goredis.Scripter, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{client: client, config: config}
}

// AllowSend checks whether subject may send another chat message in the current window.
func (r *RateLimiter) AllowSend(ctx context.Context, subject string) (*RateLimitResult, error) {
	return r.check(ctx, fmt.Sprintf("ratelimit:%s:messages", subject))
}

func (r *RateLimiter) check(ctx context.Context, key string) (*RateLimitResult, error) {
	window := int(r.config.Window.Seconds())
	if window < 1 {
		window = 1
	}

	result, err := fixedWindow.Run(ctx, r.client, []string{key}, r.config.Limit, window).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}
	if len(result) < 3 {
		return nil, fmt.Errorf("unexpected rate limit result format")
	}

	return &RateLimitResult{
		Allowed:   result[0] == 1,
		Remaining: int(result[1]),
		ResetIn:   time.Duration(result[2]) * time.Second,
		Limit:     r.config.Limit,
	}, nil
}
