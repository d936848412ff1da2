package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/focusflow/backend/internal/web"
)

// Counter increments a fixed-window counter and returns the new count.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter keeps rate-limit counters in Redis so limits hold across
// instances instead of living in process-local state.
type RedisCounter struct {
	rdb *redis.Client
}

func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// Arm the expiry only when the counter is created. Re-arming on every
	// increment would keep the window alive under steady traffic and the
	// counter would never reset.
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimit enforces a fixed-window request quota per client IP.
// The scope keeps the general and auth-specific windows independent;
// code is the machine-readable 429 code for this scope.
func RateLimit(counter Counter, scope string, limit int, window time.Duration, code string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit:" + scope + ":" + clientIP(r)
			count, err := counter.Incr(r.Context(), key, window)
			if err != nil {
				// Counter outage must not take the API down.
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				web.FailCode(w, http.StatusTooManyRequests,
					"Too many requests, please try again later", code)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
