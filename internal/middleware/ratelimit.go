package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/AnshRaj112/goexplore-backend/internal/logging"
	"github.com/AnshRaj112/goexplore-backend/pkg/clientip"
	"github.com/redis/go-redis/v9"
)

const (
	// RateLimitWindow is 60 seconds
	RateLimitWindow = 60 * time.Second
	// RateLimitMaxRequests is the maximum number of requests per IP in the window
	RateLimitMaxRequests = 120
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:"
)

// RedisRateLimiter is a fixed-window per-IP limiter shared by every instance.
type RedisRateLimiter struct {
	client *redis.Client
	window time.Duration
	max    int64
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, window time.Duration, max int64) *RedisRateLimiter {
	if window <= 0 {
		window = RateLimitWindow
	}
	if max <= 0 {
		max = RateLimitMaxRequests
	}
	return &RedisRateLimiter{client: client, window: window, max: max, now: time.Now}
}

// Middleware counts requests per IP and window. Redis errors let the request through.
func (l *RedisRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := clientip.Key(r)
		windowStart := l.now().Truncate(l.window)
		key := fmt.Sprintf("%s%s:%d", RateLimitKeyPrefix, ip, windowStart.Unix())

		count, err := l.client.Incr(ctx, key).Result()
		if err == nil && count == 1 {
			err = l.client.Expire(ctx, key, l.window).Err()
		}
		if err != nil {
			logging.FromContext(ctx).Warn("rate limiter unavailable; allowing request", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		reset := windowStart.Add(l.window)
		w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(l.max, 10))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if count > l.max {
			retryAfter := int(reset.Sub(l.now()).Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Remaining", "0")
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(l.max-count, 10))
		next.ServeHTTP(w, r)
	})
}
