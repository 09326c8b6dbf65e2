package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID gives every request a stable identifier so the audit log can
// correlate a UI action with the lifecycle transitions it caused.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
			c.Set(requestIDHeader, reqID)
		}

		c.Locals(requestIDHeader, reqID)

		return c.Next()
	}
}
