package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/product-inventory/internal/apperr"
	"github.com/iliyamo/product-inventory/internal/config"
)

// windowScript counts one hit in a fixed window. The first hit arms the
// window expiry; the reply is {count, remaining window in ms}.
var windowScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	if ttl < 0 then ttl = 0 end
	return { count, ttl }
`)

// RateLimit returns a per-IP fixed-window limiter for one named route.
// Exceeding the limit produces a 429 with a Retry-After hint. When Redis
// is unavailable or the limiter is disabled the middleware degrades to a
// pass-through; rate limiting is protection, not a dependency.
func RateLimit(rdb *redis.Client, cfg config.RateLimitConfig, name string, limit int, window time.Duration) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return func(c echo.Context) error { return next(c) } }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" { ip = "unknown" }
			key := strings.Join([]string{cfg.Prefix, name, "ip", ip}, ":")

			ctx := c.Request().Context()
			vals, err := windowScript.Run(ctx, rdb, []string{key}, window.Milliseconds()).Result()
			if err != nil {
				if cfg.Debug {
					c.Logger().Warnf("[ratelimit] redis error for key=%s: %v", key, err)
				}
				return next(c)
			}

			arr, ok := vals.([]interface{})
			if !ok || len(arr) != 2 {
				if cfg.Debug {
					c.Logger().Warnf("[ratelimit] unexpected script result for key=%s: %#v", key, vals)
				}
				return next(c)
			}
			count := asInt64(arr[0])
			ttlMs := asInt64(arr[1])

			remaining := int64(limit) - count
			if remaining < 0 { remaining = 0 }
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				secs := int(math.Ceil(float64(ttlMs) / 1000.0))
				if secs < 0 { secs = 0 }
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				if cfg.Debug {
					c.Logger().Infof("[ratelimit] block key=%s count=%d retry=%ds", key, count, secs)
				}
				return apperr.New(http.StatusTooManyRequests, apperr.CodeRateLimited,
					"too many requests, retry after "+strconv.Itoa(secs)+"s")
			}
			return next(c)
		}
	}
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64: return t
	case int32: return int64(t)
	case int: return int64(t)
	case float64: return int64(t)
	case float32: return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil { return n }
	}
	return 0
}
