package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sahel-pay/sahel_pay/internal/config"
	"github.com/sahel-pay/sahel_pay/internal/infra"
	"github.com/sahel-pay/sahel_pay/internal/logging"
	"github.com/sahel-pay/sahel_pay/internal/operator"
	"github.com/sahel-pay/sahel_pay/internal/routes"
	"github.com/sahel-pay/sahel_pay/internal/server"
	"github.com/sahel-pay/sahel_pay/internal/signing"
	"github.com/sahel-pay/sahel_pay/internal/simline"
	"github.com/sahel-pay/sahel_pay/internal/telemetry"
	"github.com/sahel-pay/sahel_pay/internal/transport"
	"github.com/sahel-pay/sahel_pay/internal/ussd"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	db, err := infra.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		if !cfg.IsDev() {
			logger.Error("connect postgres", "error", err)
			os.Exit(1)
		}
		logger.Warn("postgres unavailable, using in-memory stores", "error", err)
		db = nil
	}
	if db != nil {
		defer db.Close()
	}

	cache, err := infra.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		if !cfg.IsDev() {
			logger.Error("connect redis", "error", err)
			os.Exit(1)
		}
		logger.Warn("redis unavailable, using in-process guards", "error", err)
		cache = nil
	}
	if cache != nil {
		defer func() {
			if err := cache.Close(); err != nil {
				logger.Warn("close redis", "error", err)
			}
		}()
	}

	deviceKey, err := signing.LoadOrCreateDeviceKey(cfg.KeyPath)
	if err != nil {
		logger.Error("load device key", "error", err)
		os.Exit(1)
	}
	directory, err := signing.LoadDirectoryFile(cfg.PeersPath)
	if err != nil {
		logger.Error("load peers", "error", err)
		os.Exit(1)
	}
	// The device trusts its own key so loopback and replayed frames verify.
	if err := directory.Register(cfg.OwnerID, deviceKey.Public()); err != nil {
		logger.Error("register device key", "error", err)
		os.Exit(1)
	}

	registry, err := operator.LoadFile(cfg.OperatorsPath)
	if err != nil {
		logger.Error("load operators", "error", err)
		os.Exit(1)
	}

	lines, err := simline.ParseLines(cfg.Lines)
	if err != nil {
		logger.Error("parse telephony lines", "error", err)
		os.Exit(1)
	}
	if len(lines) == 0 {
		logger.Warn("no telephony lines configured, transfers cannot execute")
	}

	var events telemetry.Store
	if db != nil {
		events = telemetry.NewPostgresStore(db)
	} else {
		events = telemetry.NewMemoryStore()
	}

	var publisher telemetry.Publisher
	if cfg.AMQPURL != "" {
		conn, channel, err := infra.NewAMQPChannel(cfg.AMQPURL, cfg.SyncExchange)
		if err != nil {
			logger.Error("connect amqp", "error", err)
			os.Exit(1)
		}
		defer conn.Close()
		defer channel.Close()
		publisher = telemetry.NewAMQPPublisher(channel, cfg.SyncExchange, cfg.SyncRoutingKey)
	} else {
		logger.Warn("amqp not configured, telemetry stays local")
		publisher = telemetry.NewLoggerPublisher(logger)
	}

	syncer := telemetry.NewSyncer(events, publisher, logger, cfg.SyncInterval)
	if err := syncer.Start(); err != nil {
		logger.Error("start telemetry sync", "error", err)
		os.Exit(1)
	}

	// Until a radio backend lands, the loopback link carries frames between
	// the send and receive paths of the same host.
	link := transport.NewLoopback()

	srv, err := server.New(routes.Deps{
		Cfg:         cfg,
		DB:          db,
		Cache:       cache,
		Logger:      logger,
		Registry:    registry,
		Signer:      signing.NewSigner(deviceKey),
		Verifier:    signing.NewVerifier(directory),
		DeviceKeyID: deviceKey.KeyID,
		Lines:       lines,
		Dialer:      ussd.NewLoggerDialer(logger),
		Events:      events,
		Outbound:    link,
		Inbound:     link,
	})
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	<-syncer.Stop().Done()
	logger.Info("daemon exited cleanly")
}
