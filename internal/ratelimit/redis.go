package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript increments the window counter and sets its expiry on
// the first hit.
const fixedWindowScript = `local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n`

// evaler is the part of the go-redis client used by [Redis].
type evaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
}

// Redis is a fixed window limiter backed by a shared Redis counter.
type Redis struct {
	client evaler
	limit  int64
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewRedis(client *redis.Client, limit int, window time.Duration) *Redis {
	return newRedis(client, limit, window)
}

func newRedis(client evaler, limit int, window time.Duration) *Redis {
	return &Redis{
		client: client,
		limit:  int64(limit),
		window: window,
		prefix: "ratelimit:",
		now:    time.Now,
	}
}

// Allow counts the request in the current window. When Redis cannot be
// reached the request is allowed and the error is returned for logging.
func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	windowStart := r.now().UnixMilli() / r.window.Milliseconds()
	redisKey := r.prefix + key + ":" + strconv.FormatInt(windowStart, 10)

	n, err := r.client.Eval(ctx, fixedWindowScript, []string{redisKey}, r.window.Milliseconds()).Int64()
	if err != nil {
		return true, fmt.Errorf("rate limit counter: %w", err)
	}

	return n <= r.limit, nil
}
