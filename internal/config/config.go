package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName        = "SahelPay"
	defaultAppEnv         = "development"
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultShutdownDelay  = 10 * time.Second
	defaultIdempotencyTTL = 24 * time.Hour
	defaultDialTimeout    = 30 * time.Second
	defaultAckTimeout     = 45 * time.Second
	defaultSyncInterval   = 5 * time.Minute
	defaultSyncExchange   = "sahelpay.telemetry"
	defaultSyncRoutingKey = "usage.events"
	defaultKeyPath        = "device.key"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	AMQPURL        string
	OwnerID        string
	KeyPath        string
	PeersPath      string
	OperatorsPath  string
	Lines          string
	DialTimeout    time.Duration
	AckTimeout     time.Duration
	SyncInterval   time.Duration
	SyncExchange   string
	SyncRoutingKey string
	ShutdownPeriod time.Duration
	IdempotencyTTL time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         getEnv("APP_ENV", defaultAppEnv),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		AMQPURL:        os.Getenv("AMQP_URL"),
		OwnerID:        os.Getenv("DEVICE_OWNER_ID"),
		KeyPath:        getEnv("DEVICE_KEY_PATH", defaultKeyPath),
		PeersPath:      os.Getenv("PEERS_PATH"),
		OperatorsPath:  os.Getenv("OPERATORS_PATH"),
		Lines:          os.Getenv("TELEPHONY_LINES"),
		DialTimeout:    defaultDialTimeout,
		AckTimeout:     defaultAckTimeout,
		SyncInterval:   defaultSyncInterval,
		SyncExchange:   getEnv("SYNC_EXCHANGE", defaultSyncExchange),
		SyncRoutingKey: getEnv("SYNC_ROUTING_KEY", defaultSyncRoutingKey),
		ShutdownPeriod: defaultShutdownDelay,
		IdempotencyTTL: defaultIdempotencyTTL,
	}

	var err error
	if cfg.DialTimeout, err = durationEnv("DIAL_TIMEOUT", cfg.DialTimeout); err != nil {
		return Config{}, err
	}
	if cfg.AckTimeout, err = durationEnv("ACK_TIMEOUT", cfg.AckTimeout); err != nil {
		return Config{}, err
	}
	if cfg.SyncInterval, err = durationEnv("SYNC_INTERVAL", cfg.SyncInterval); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownPeriod, err = durationEnv("SHUTDOWN_TIMEOUT", cfg.ShutdownPeriod); err != nil {
		return Config{}, err
	}
	if cfg.IdempotencyTTL, err = durationEnv("IDEMPOTENCY_TTL", cfg.IdempotencyTTL); err != nil {
		return Config{}, err
	}

	if cfg.OwnerID == "" {
		return Config{}, fmt.Errorf("DEVICE_OWNER_ID must be set")
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the app runs in a development environment, where the
// daemon falls back to in-memory stores when external backends are absent.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// durationEnv reads NAME as a Go duration, or NAME_SECONDS as an integer
// number of seconds, keeping the fallback when neither is set.
func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	if v := os.Getenv(name + "_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s_SECONDS: %w", name, err)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	if v := os.Getenv(name); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", name, err)
		}
		return d, nil
	}
	return fallback, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
