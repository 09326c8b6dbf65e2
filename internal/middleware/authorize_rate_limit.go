package middleware

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// AuthorizeRateLimit bounds PIN authorization attempts per transaction id.
// The engine's three-strike lockout is the real guard; this keeps a
// misbehaving caller from hammering the bcrypt comparison. Fail-open on
// cache errors and without Redis.
func AuthorizeRateLimit(cache *redis.Client, maxPerMin int) fiber.Handler {
	if maxPerMin <= 0 {
		maxPerMin = 5
	}
	return func(c *fiber.Ctx) error {
		if cache == nil {
			return c.Next()
		}
		subject := c.Params("id")
		if subject == "" {
			subject = c.IP()
		}
		key := "rl:authorize:" + subject
		cnt, err := cache.Incr(c.UserContext(), key).Result()
		if err == nil && cnt == 1 {
			cache.Expire(c.UserContext(), key, time.Minute)
		}
		if err != nil {
			return c.Next()
		}
		if cnt > int64(maxPerMin) {
			return fiber.NewError(http.StatusTooManyRequests, "too many authorization attempts, try again later")
		}
		return c.Next()
	}
}
