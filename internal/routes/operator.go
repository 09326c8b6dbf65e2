package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/sahel-pay/sahel_pay/internal/operator"
	"github.com/sahel-pay/sahel_pay/internal/simline"
)

// RegisterOperatorRoutes exposes the operator catalog and the device's
// telephony lines with their current routing bindings.
func RegisterOperatorRoutes(r fiber.Router, registry *operator.Registry, lines simline.Source, bindings simline.BindingStore) {
	r.Get("/operators", func(c *fiber.Ctx) error {
		profiles := registry.List()
		out := make([]fiber.Map, 0, len(profiles))
		for _, p := range profiles {
			// The dial template stays server-side; the UI only needs identity
			// and branding.
			out = append(out, fiber.Map{
				"id":           p.ID,
				"name":         p.Name,
				"display_name": p.DisplayName,
				"brand_color":  p.BrandColor,
			})
		}
		return c.JSON(fiber.Map{"operators": out})
	})

	r.Get("/lines", func(c *fiber.Ctx) error {
		available, err := lines.Lines(c.UserContext())
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		out := make([]fiber.Map, 0, len(available))
		for _, line := range available {
			out = append(out, fiber.Map{
				"subscription_id": line.SubscriptionID,
				"slot_index":      line.SlotIndex,
				"carrier":         line.Carrier,
				"display_name":    line.DisplayName(),
			})
		}

		bound := make(map[string]int)
		for _, p := range registry.List() {
			if subID, ok, err := bindings.Get(c.UserContext(), p.ID); err == nil && ok {
				bound[p.ID] = subID
			}
		}
		return c.JSON(fiber.Map{"lines": out, "bindings": bound})
	})
}
