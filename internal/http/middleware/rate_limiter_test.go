package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"drink-service/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, 2) // 2 req/sec, burst of 2

	// First two requests should succeed
	assert.True(t, rl.Allow("test-key"))
	assert.True(t, rl.Allow("test-key"))

	// Third request should be rate limited
	assert.False(t, rl.Allow("test-key"))
}

func TestRateLimiter_Middleware(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(2, 2)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	middleware := rl.Middleware()

	// First two requests pass and carry the limit headers
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/drinks", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := middleware(handler)(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))
	}

	// Third request from the same client is rejected
	req := httptest.NewRequest(http.MethodGet, "/drinks", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := middleware(handler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_KeysByVerifiedSubject(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(1, 1)
	middleware := rl.Middleware()

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	run := func(subject string) int {
		req := httptest.NewRequest(http.MethodGet, "/drinks", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if subject != "" {
			c.Set(auth.ContextKeyClaims, &auth.Claims{
				Permissions: []string{},
				RegisteredClaims: jwt.RegisteredClaims{
					Subject: subject,
				},
			})
		}
		assert.NoError(t, middleware(handler)(c))
		return rec.Code
	}

	// Two subjects sharing an IP do not share a bucket
	assert.Equal(t, http.StatusOK, run("auth0|barista"))
	assert.Equal(t, http.StatusOK, run("auth0|manager"))

	// But a repeat from the same subject is limited
	assert.Equal(t, http.StatusTooManyRequests, run("auth0|barista"))

	// Anonymous requests fall back to the client IP bucket
	assert.Equal(t, http.StatusOK, run(""))
	assert.Equal(t, http.StatusTooManyRequests, run(""))
}

func TestRateLimiter_DifferentKeys(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	assert.True(t, rl.Allow("key1"))
	assert.True(t, rl.Allow("key2"))

	assert.False(t, rl.Allow("key1"))
	assert.False(t, rl.Allow("key2"))
}
