package middleware

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"fad/pkg/errors"
	"fad/pkg/logger"
	"fad/pkg/response"
)

// Limiter is the token bucket store shared with the per-user action limits.
type Limiter interface {
	Allow(key, action string) (bool, time.Duration)
}

// RateLimit throttles requests per client IP. Each action gets its own
// bucket, so /v1/auth and /v1/reports do not share a budget.
func RateLimit(limiter Limiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			ok, wait := limiter.Allow(ip, action)
			if !ok {
				retryAfter := int(math.Ceil(wait.Seconds()))
				logger.Warn("RATE LIMIT: Blocked %s request from IP %s (reset in %v)", action, ip, wait)

				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return response.Error(c, errors.TooManyRequests(
					fmt.Sprintf("Rate limit exceeded, try again in %ds", retryAfter)))
			}

			return next(c)
		}
	}
}
