package wallet

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/sahel-pay/sahel_pay/internal/signing"
)

// Handler exposes wallet settings endpoints. PIN digests never appear in
// responses.
type Handler struct {
	service *Service
}

// NewHandler constructs a wallet handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get returns the device wallet settings.
func (h *Handler) Get(c *fiber.Ctx) error {
	cred, err := h.service.Get(c.UserContext())
	if err != nil {
		if errors.Is(err, ErrNoCredential) {
			return fiber.NewError(http.StatusNotFound, "wallet not set up")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"owner_id":            cred.OwnerID,
		"operator_preference": cred.OperatorPreference,
		"biometric_enabled":   cred.BiometricEnabled,
		"device_key_id":       cred.DeviceKeyID,
		"pin_set":             cred.PINDigest != "",
		"updated_at":          cred.UpdatedAt,
	})
}

type setPINRequest struct {
	PIN string `json:"pin"`
}

// SetPIN enrolls or replaces the wallet PIN.
func (h *Handler) SetPIN(c *fiber.Ctx) error {
	var req setPINRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.SetPIN(c.UserContext(), req.PIN); err != nil {
		if errors.Is(err, signing.ErrWeakPIN) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(http.StatusNoContent)
}

type preferencesRequest struct {
	OperatorID       string `json:"operator_id"`
	BiometricEnabled *bool  `json:"biometric_enabled"`
}

// SetPreferences updates the default operator and biometric toggle.
func (h *Handler) SetPreferences(c *fiber.Ctx) error {
	var req preferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	ctx := c.UserContext()
	if req.OperatorID != "" {
		if err := h.service.SetOperatorPreference(ctx, req.OperatorID); err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	if req.BiometricEnabled != nil {
		if err := h.service.SetBiometric(ctx, *req.BiometricEnabled); err != nil {
			if errors.Is(err, ErrNoCredential) {
				return fiber.NewError(http.StatusConflict, "set a PIN first")
			}
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.SendStatus(http.StatusNoContent)
}
