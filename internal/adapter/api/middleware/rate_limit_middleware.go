package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"gearswap/internal/infrastructure/ratelimit"
	"gearswap/pkg/logger"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit caps an action per authenticated user; anonymous requests are keyed
// by IP.
func (m *RateLimitMiddleware) Limit(action string, maxTokens, refillRate int, refillTime time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key, ok := c.Get("uid").(string)
			if !ok || key == "" {
				key = c.RealIP()
			}

			allowed, wait := m.limiter.Allow(key, action, maxTokens, refillRate, refillTime)
			if !allowed {
				logger.Warn("Rate limit hit for %s on %s", key, action)
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":       "Rate limit exceeded",
					"retry_after": int(wait.Seconds()),
				})
			}

			return next(c)
		}
	}
}
