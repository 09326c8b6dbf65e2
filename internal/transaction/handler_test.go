package transaction

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type countingOutbound struct {
	sends int
	err   error
}

func (o *countingOutbound) Send(_ context.Context, _ []byte) error {
	if o.err != nil {
		return o.err
	}
	o.sends++
	return nil
}

func TestMarkSentHandsOffOncePerIntent(t *testing.T) {
	f := newFixture(t)
	outbound := &countingOutbound{}
	h := NewHandler(f.engine, outbound)

	app := fiber.New()
	app.Post("/intents/:id/sent", h.MarkSent)

	res, err := f.engine.CreateIntent(context.Background(), CreateInput{
		Amount:     decimal.NewFromInt(500),
		OperatorID: "orange",
		Recipient:  "22670000000",
	})
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}

	send := func() int {
		req := httptest.NewRequest(fiber.MethodPost, "/intents/"+res.Intent.TransactionID+"/sent", strings.NewReader("{}"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	if status := send(); status != fiber.StatusOK {
		t.Fatalf("first mark sent: status %d", status)
	}
	// The retry succeeds but must not re-broadcast the payload.
	if status := send(); status != fiber.StatusOK {
		t.Fatalf("second mark sent: status %d", status)
	}
	if outbound.sends != 1 {
		t.Fatalf("payload broadcast %d times", outbound.sends)
	}

	rec, err := f.engine.Get(context.Background(), res.Intent.TransactionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Status != StatusSent {
		t.Fatalf("expected sent, got %s", rec.Status)
	}
}

func TestMarkSentFailedHandoffLeavesRecordCreated(t *testing.T) {
	f := newFixture(t)
	outbound := &countingOutbound{err: errors.New("radio busy")}
	h := NewHandler(f.engine, outbound)

	app := fiber.New()
	app.Post("/intents/:id/sent", h.MarkSent)

	res, err := f.engine.CreateIntent(context.Background(), CreateInput{
		Amount:     decimal.NewFromInt(500),
		OperatorID: "orange",
		Recipient:  "22670000000",
	})
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodPost, "/intents/"+res.Intent.TransactionID+"/sent", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}

	rec, err := f.engine.Get(context.Background(), res.Intent.TransactionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Status != StatusCreated {
		t.Fatalf("failed handoff advanced status to %s", rec.Status)
	}
}
