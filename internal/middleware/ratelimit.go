package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/evharten/workshop-booking/internal/config"
)

// RateLimit returns a fixed-window limiter keyed on client IP and route,
// backed by a Redis counter.  The window key carries the window index so
// expired counters simply age out via TTL.  When Redis is unavailable the
// limiter fails open: a booking site should degrade to unlimited rather
// than refuse customers because a cache is down.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	window := cfg.Window
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			now := time.Now().Unix()
			win := now / int64(window.Seconds())
			key := fmt.Sprintf("%s:%s:%s:%d", cfg.Prefix, c.RealIP(), c.Path(), win)

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c) // fail open
			}
			if count == 1 {
				_ = rdb.Expire(ctx, key, window).Err()
			}

			remaining := int64(cfg.Limit) - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(cfg.Limit) {
				retry := int64(window.Seconds()) - (now % int64(window.Seconds()))
				c.Response().Header().Set("Retry-After", strconv.FormatInt(retry, 10))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too_many_requests",
					"retry_after": retry,
				})
			}
			return next(c)
		}
	}
}
