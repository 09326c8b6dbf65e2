package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahel-pay/sahel_pay/internal/wallet"
)

// RegisterWalletRoutes wires the device wallet settings endpoints.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	r.Get("/wallet", h.Get)
	r.Post("/wallet/pin", h.SetPIN)
	r.Post("/wallet/preferences", h.SetPreferences)
}
