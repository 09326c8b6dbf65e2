package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/sahel-pay/sahel_pay/internal/config"
	"github.com/sahel-pay/sahel_pay/internal/middleware"
	"github.com/sahel-pay/sahel_pay/internal/notification"
	"github.com/sahel-pay/sahel_pay/internal/operator"
	"github.com/sahel-pay/sahel_pay/internal/payload"
	"github.com/sahel-pay/sahel_pay/internal/signing"
	"github.com/sahel-pay/sahel_pay/internal/simline"
	"github.com/sahel-pay/sahel_pay/internal/telemetry"
	"github.com/sahel-pay/sahel_pay/internal/transaction"
	"github.com/sahel-pay/sahel_pay/internal/transport"
	"github.com/sahel-pay/sahel_pay/internal/ussd"
	"github.com/sahel-pay/sahel_pay/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg         config.Config
	DB          *pgxpool.Pool
	Cache       *redis.Client
	Logger      *slog.Logger
	Registry    *operator.Registry
	Signer      *signing.Signer
	Verifier    *signing.Verifier
	DeviceKeyID string
	Lines       simline.Source
	Dialer      ussd.Dialer
	Events      telemetry.Store
	Outbound    transport.Outbound
	Inbound     transport.Listener
}

// Setup configures middlewares and all application routes. Without a
// database or Redis (dev runs) the in-memory backends are used.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var txStore transaction.Store
	var bindings simline.BindingStore
	var walletRepo wallet.Repository
	if d.DB != nil {
		txStore = transaction.NewPostgresStore(d.DB)
		bindings = simline.NewPostgresBindingStore(d.DB)
		walletRepo = wallet.NewPostgresRepository(d.DB)
	} else {
		txStore = transaction.NewMemoryStore()
		bindings = simline.NewMemoryBindingStore()
		walletRepo = wallet.NewMemoryRepository()
	}
	var flights transaction.Flight
	if d.Cache != nil {
		flights = transaction.NewRedisFlight(d.Cache)
	} else {
		flights = transaction.NewMemoryFlight()
	}

	walletSvc := wallet.NewService(walletRepo, d.Cfg.OwnerID, d.DeviceKeyID)
	notifier := notification.NewLoggerNotifier(d.Logger)

	engine, err := transaction.NewEngine(transaction.Deps{
		Store:       txStore,
		Flights:     flights,
		Registry:    d.Registry,
		Signer:      d.Signer,
		Verifier:    d.Verifier,
		Resolver:    simline.NewResolver(bindings),
		Bindings:    bindings,
		Lines:       d.Lines,
		Credentials: walletSvc,
		Executor:    ussd.NewExecutor(d.Dialer, d.Cfg.DialTimeout),
		Events:      d.Events,
		Notifier:    notifier,
		Logger:      d.Logger,
		SenderID:    d.Cfg.OwnerID,
		AckTimeout:  d.Cfg.AckTimeout,
	})
	if err != nil {
		return err
	}

	// Inbound frames from the radio go straight to the engine; junk is
	// logged and dropped, never fatal.
	if d.Inbound != nil {
		if _, err := d.Inbound.Listen(func(ctx context.Context, raw string) {
			if payload.IsAck(raw) {
				if _, err := engine.Acknowledge(ctx, raw); err != nil {
					d.Logger.Warn("inbound ack rejected", "error", err)
				}
				return
			}
			if _, err := engine.Receive(ctx, raw); err != nil {
				d.Logger.Warn("inbound frame rejected", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	txHandler := transaction.NewHandler(engine, d.Outbound)
	walletHandler := wallet.NewHandler(walletSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	rateLimiter := middleware.AuthorizeRateLimit(d.Cache, 5)
	RegisterTransactionRoutes(api, txHandler, rateLimiter)
	RegisterOperatorRoutes(api, d.Registry, d.Lines, bindings)
	RegisterWalletRoutes(api, walletHandler)

	return nil
}
