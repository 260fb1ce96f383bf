package middleware

import (
	"net/http"
	"strconv"
	"sync"

	"drink-service/internal/auth"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	globalRequestsPerSecond = 50
	globalBurst             = 100

	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRetryAfter         = "Retry-After"

	msgRateLimited = "rate limit exceeded"

	keyPrefixSubject = "sub:"
	keyPrefixIP      = "ip:"
)

// RateLimiter implements token bucket rate limiting per identity
type RateLimiter struct {
	limiters sync.Map // key -> *rate.Limiter
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(requestsPerSecond int, burst int) *RateLimiter {
	return &RateLimiter{
		rate:  rate.Limit(requestsPerSecond),
		burst: burst,
	}
}

// NewGlobalRateLimiter returns the limiter applied to every request.
func NewGlobalRateLimiter() *RateLimiter {
	return NewRateLimiter(globalRequestsPerSecond, globalBurst)
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	limiter, exists := rl.limiters.Load(key)
	if !exists {
		limiter, _ = rl.limiters.LoadOrStore(key, rate.NewLimiter(rl.rate, rl.burst))
	}
	return limiter.(*rate.Limiter)
}

// Allow checks if a request should be allowed for the given key
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Middleware limits by the verified token subject when the authorization
// gate has already run, falling back to the client IP otherwise.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := keyPrefixIP + c.RealIP()
			if claims, err := auth.GetClaims(c); err == nil {
				if sub, err := claims.GetSubject(); err == nil && sub != "" {
					key = keyPrefixSubject + sub
				}
			}

			limiter := rl.getLimiter(key)

			c.Response().Header().Set(headerRateLimitLimit, strconv.Itoa(rl.burst))

			if !limiter.Allow() {
				c.Response().Header().Set(headerRateLimitRemaining, "0")
				c.Response().Header().Set(headerRetryAfter, "1")
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"success": false,
					"error":   http.StatusTooManyRequests,
					"message": msgRateLimited,
				})
			}

			c.Response().Header().Set(headerRateLimitRemaining, strconv.FormatFloat(limiter.Tokens(), 'f', 0, 64))

			return next(c)
		}
	}
}
