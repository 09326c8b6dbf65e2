package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/sahel-pay/sahel_pay/internal/logging"
)

func setupTestApp(t *testing.T, cache *redis.Client) (*fiber.App, *int) {
	t.Helper()
	app := fiber.New()
	app.Use(Idempotency(cache, time.Minute, logging.Discard()))

	var handled int
	app.Post("/transactions/tx-1/accept", func(c *fiber.Ctx) error {
		handled++
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "accepted"})
	})
	return app, &handled
}

func newTestCache(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestIdempotencyRequiresHeader(t *testing.T) {
	app, _ := setupTestApp(t, newTestCache(t))

	req := httptest.NewRequest(fiber.MethodPost, "/transactions/tx-1/accept", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected %d got %d", fiber.StatusBadRequest, resp.StatusCode)
	}
}

func TestIdempotencyReplaysResponseWithoutReinvoking(t *testing.T) {
	app, handled := setupTestApp(t, newTestCache(t))

	send := func() (int, string) {
		req := httptest.NewRequest(fiber.MethodPost, "/transactions/tx-1/accept", strings.NewReader("{}"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(idempotencyKeyHeader, "accept-tx-1")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode, string(body)
	}

	status1, body1 := send()
	status2, body2 := send()

	if status1 != fiber.StatusOK || status2 != status1 {
		t.Fatalf("statuses: %d then %d", status1, status2)
	}
	if body1 != body2 {
		t.Fatalf("replayed body differs: %s vs %s", body1, body2)
	}
	if *handled != 1 {
		t.Fatalf("handler ran %d times", *handled)
	}
}

func TestIdempotencyPassThroughWithoutRedis(t *testing.T) {
	app, handled := setupTestApp(t, nil)

	req := httptest.NewRequest(fiber.MethodPost, "/transactions/tx-1/accept", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected pass-through, got %d", resp.StatusCode)
	}
	if *handled != 1 {
		t.Fatalf("handler ran %d times", *handled)
	}
}
