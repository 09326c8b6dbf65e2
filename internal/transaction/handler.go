package transaction

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/sahel-pay/sahel_pay/internal/operator"
	"github.com/sahel-pay/sahel_pay/internal/payload"
	"github.com/sahel-pay/sahel_pay/internal/signing"
	"github.com/sahel-pay/sahel_pay/internal/simline"
	"github.com/sahel-pay/sahel_pay/internal/transport"
	"github.com/sahel-pay/sahel_pay/internal/ussd"
)

// Handler exposes the transaction lifecycle over HTTP.
type Handler struct {
	engine   *Engine
	outbound transport.Outbound
}

// NewHandler constructs a transaction handler. outbound may be nil when the
// handoff happens outside the daemon (QR code rendered by the UI).
func NewHandler(engine *Engine, outbound transport.Outbound) *Handler {
	return &Handler{engine: engine, outbound: outbound}
}

type createIntentRequest struct {
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	OperatorID   string `json:"operator_id"`
	Recipient    string `json:"recipient"`
	ReceiverHint string `json:"receiver_hint"`
	Note         string `json:"note"`
}

// CreateIntent builds and signs a transfer intent, returning the armored
// payload ready for display or radio handoff.
func (h *Handler) CreateIntent(c *fiber.Ctx) error {
	var req createIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "amount must be a decimal number")
	}

	res, err := h.engine.CreateIntent(c.UserContext(), CreateInput{
		Amount:       amount,
		Currency:     req.Currency,
		OperatorID:   req.OperatorID,
		Recipient:    req.Recipient,
		ReceiverHint: req.ReceiverHint,
		Note:         req.Note,
	})
	if err != nil {
		return mapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"transaction": recordResponse(res.Record),
		"armored":     res.Armored,
	})
}

// MarkSent hands the armored payload to the proximity channel and records
// the transition. A failed handoff leaves the record created so the caller
// can retry.
func (h *Handler) MarkSent(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	if h.outbound != nil {
		rec, err := h.engine.Get(ctx, id)
		if err != nil {
			return mapError(err)
		}
		// Only a created record still needs the handoff; a replayed call on a
		// sent record must not re-broadcast the payload.
		if rec.Status == StatusCreated {
			intent, err := payload.Decode(rec.RawPayload)
			if err != nil {
				return mapError(err)
			}
			armored, err := payload.EncodeArmored(intent)
			if err != nil {
				return mapError(err)
			}
			if err := h.outbound.Send(ctx, []byte(armored)); err != nil {
				return fiber.NewError(http.StatusBadGateway, "transport handoff failed, retry")
			}
		}
	}

	rec, err := h.engine.MarkSent(ctx, id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(recordResponse(rec))
}

type ackRequest struct {
	Frame string `json:"frame"`
}

// Acknowledge delivers a counterparty acknowledgment frame for a sent intent.
func (h *Handler) Acknowledge(c *fiber.Ctx) error {
	var req ackRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.engine.Acknowledge(c.UserContext(), req.Frame)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(recordResponse(rec))
}

type scanRequest struct {
	Raw string `json:"raw"`
}

// Scan ingests raw scanned or radio-received text on the receiver side.
func (h *Handler) Scan(c *fiber.Ctx) error {
	var req scanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.engine.Receive(c.UserContext(), req.Raw)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(recordResponse(rec))
}

// Accept accepts a received transfer, resolving the telephony line. When
// several unbound lines exist the response lists the candidates so the caller
// can present a choice.
func (h *Handler) Accept(c *fiber.Ctx) error {
	rec, err := h.engine.Accept(c.UserContext(), c.Params("id"))
	if err != nil {
		var sel *LineSelectionError
		if errors.As(err, &sel) {
			return c.Status(http.StatusConflict).JSON(fiber.Map{
				"code":       "line_selection_required",
				"candidates": lineCandidates(sel.Candidates),
			})
		}
		return mapError(err)
	}
	return c.JSON(recordResponse(rec))
}

// Decline declines a received transfer.
func (h *Handler) Decline(c *fiber.Ctx) error {
	rec, err := h.engine.Decline(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(recordResponse(rec))
}

type chooseLineRequest struct {
	SubscriptionID int `json:"subscription_id"`
}

// ChooseLine records the user's explicit line choice for a transfer.
func (h *Handler) ChooseLine(c *fiber.Ctx) error {
	var req chooseLineRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.engine.ChooseLine(c.UserContext(), c.Params("id"), req.SubscriptionID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(recordResponse(rec))
}

type authorizeRequest struct {
	PIN string `json:"pin"`
}

// Authorize runs the PIN challenge and executes the carrier dial. The PIN
// never appears in the response or logs.
func (h *Handler) Authorize(c *fiber.Ctx) error {
	var req authorizeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.engine.Authorize(c.UserContext(), c.Params("id"), req.PIN)
	if err != nil {
		return mapError(err)
	}

	resp := fiber.Map{"transaction": recordResponse(rec)}
	if rec.Status == StatusSucceeded && rec.Direction == DirectionReceived {
		if frame, ackErr := h.engine.BuildAck(c.UserContext(), rec.TransactionID); ackErr == nil {
			resp["ack_frame"] = frame
		}
	}
	return c.JSON(resp)
}

// Get returns a single transaction record.
func (h *Handler) Get(c *fiber.Ctx) error {
	rec, err := h.engine.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(recordResponse(rec))
}

// List returns transaction history newest-first.
func (h *Handler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	records, err := h.engine.History(c.UserContext(), limit)
	if err != nil {
		return mapError(err)
	}
	out := make([]fiber.Map, 0, len(records))
	for _, rec := range records {
		out = append(out, recordResponse(rec))
	}
	return c.JSON(fiber.Map{"transactions": out})
}

func recordResponse(rec Record) fiber.Map {
	return fiber.Map{
		"transaction_id":    rec.TransactionID,
		"direction":         rec.Direction,
		"amount":            rec.Amount.String(),
		"currency":          rec.Currency,
		"operator_id":       rec.OperatorID,
		"counterparty_hint": rec.CounterpartyHint,
		"timestamp_ms":      rec.TimestampMs,
		"status":            rec.Status,
		"result_message":    rec.ResultMessage,
		"created_at":        rec.CreatedAt,
	}
}

func lineCandidates(lines []simline.Line) []fiber.Map {
	out := make([]fiber.Map, 0, len(lines))
	for _, line := range lines {
		out = append(out, fiber.Map{
			"subscription_id": line.SubscriptionID,
			"slot_index":      line.SlotIndex,
			"carrier":         line.Carrier,
			"display_name":    line.DisplayName(),
		})
	}
	return out
}

// mapError translates engine errors into HTTP statuses with machine-readable
// codes, so the caller can word remediation differently per failure class.
func mapError(err error) error {
	var terminal *TerminalStateError
	var carrier *ussd.CarrierError

	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "transaction not found")
	case errors.Is(err, payload.ErrMalformedPayload), errors.Is(err, payload.ErrFieldType):
		return fiber.NewError(http.StatusBadRequest, "malformed payload")
	case errors.Is(err, signing.ErrUntrustedPayload):
		return fiber.NewError(http.StatusBadRequest, "payload failed authenticity check")
	case errors.Is(err, operator.ErrUnknownOperator):
		return fiber.NewError(http.StatusBadRequest, "unknown operator")
	case errors.Is(err, ErrNoTelephonyLine):
		return fiber.NewError(http.StatusConflict, "no telephony line available")
	case errors.Is(err, ErrLineSelectionRequired):
		return fiber.NewError(http.StatusConflict, "line selection required")
	case errors.Is(err, ErrAuthorizationLockedOut):
		return fiber.NewError(http.StatusForbidden, "authorization locked out")
	case errors.Is(err, ErrAuthorizationFailed):
		return fiber.NewError(http.StatusUnprocessableEntity, "authorization failed")
	case errors.Is(err, ErrActionInFlight):
		return fiber.NewError(http.StatusConflict, "another action is in progress")
	case errors.Is(err, ErrAckTimeout):
		return fiber.NewError(http.StatusGatewayTimeout, "acknowledgment timed out")
	case errors.As(err, &terminal):
		return fiber.NewError(http.StatusConflict, "transaction already "+string(terminal.Status))
	case errors.Is(err, ErrInvalidTransition):
		return fiber.NewError(http.StatusConflict, err.Error())
	case errors.As(err, &carrier), errors.Is(err, ussd.ErrDialTimeout):
		return fiber.NewError(http.StatusBadGateway, "carrier could not complete the transfer")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
