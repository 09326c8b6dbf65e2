package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahel-pay/sahel_pay/internal/transaction"
)

// RegisterTransactionRoutes wires the lifecycle endpoints. The authorize
// endpoint carries an extra rate limit on top of the engine's PIN lockout.
func RegisterTransactionRoutes(r fiber.Router, h *transaction.Handler, rateLimiter fiber.Handler) {
	r.Post("/intents", h.CreateIntent)
	r.Post("/intents/:id/sent", h.MarkSent)
	r.Post("/intents/:id/ack", h.Acknowledge)
	r.Post("/scan", h.Scan)

	r.Get("/transactions", h.List)
	r.Get("/transactions/:id", h.Get)
	r.Post("/transactions/:id/accept", h.Accept)
	r.Post("/transactions/:id/decline", h.Decline)
	r.Post("/transactions/:id/line", h.ChooseLine)
	if rateLimiter != nil {
		r.Post("/transactions/:id/authorize", rateLimiter, h.Authorize)
	} else {
		r.Post("/transactions/:id/authorize", h.Authorize)
	}
}
