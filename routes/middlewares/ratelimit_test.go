package middlewares

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	assert.True(t, limiter.Allow("user:1", now))
	assert.True(t, limiter.Allow("user:1", now))
	assert.False(t, limiter.Allow("user:1", now))

	assert.True(t, limiter.Allow("user:2", now))
	assert.True(t, limiter.Allow("user:1", now.Add(time.Second)))
}

func TestRateLimiter_Handler(t *testing.T) {
	limiter := NewRateLimiter(1, 1)

	app := fiber.New()
	app.Get("/", limiter.Handler, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get(fiber.HeaderRetryAfter))
}
