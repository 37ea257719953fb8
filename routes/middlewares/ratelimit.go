package middlewares

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/goleiroon/goleiroon/controllers/auth"
	"github.com/goleiroon/goleiroon/controllers/helpers"
)

var TooManyRequests = "server.too_many_requests"

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per user, or per IP before login.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	idle     time.Duration
}

func NewRateLimiter(rps int, burst int) *RateLimiter {
	if rps <= 0 {
		rps = 20
	}
	if burst <= 0 {
		burst = rps * 2
	}

	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		idle:     10 * time.Minute,
	}
}

func (l *RateLimiter) Allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	if len(l.visitors) > 10000 {
		for k, other := range l.visitors {
			if now.Sub(other.lastSeen) > l.idle {
				delete(l.visitors, k)
			}
		}
	}

	return v.limiter.AllowN(now, 1)
}

func (l *RateLimiter) Handler(c *fiber.Ctx) error {
	key := "ip:" + c.IP()
	if user := auth.GetCurrentUser(c); user != nil {
		key = "user:" + strconv.FormatUint(user.ID, 10)
	}

	if !l.Allow(key, time.Now()) {
		c.Set(fiber.HeaderRetryAfter, "1")
		return helpers.ResponseErrors(c, fiber.StatusTooManyRequests, TooManyRequests)
	}

	return c.Next()
}
