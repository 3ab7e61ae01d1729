package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment selects which vendor endpoints and client API keys a deployment
// uses. UAT and production run as separate processes against the same schema.
type Environment string

const (
	EnvUAT        Environment = "uat"
	EnvProduction Environment = "production"
)

// Config captures process-level configuration so main stays lean.
type Config struct {
	Addr        string
	Environment Environment
	LogLevel    slog.Level

	// PostgresDSN empty means in-memory stores (dev and tests).
	PostgresDSN string

	// RedisURL empty disables the look-aside record cache.
	RedisURL string

	// Kafka audit mirroring; empty brokers disables the publisher.
	KafkaBrokers    []string
	KafkaAuditTopic string

	// AuditBuffer sizes the audit worker inbox.
	AuditBuffer int

	// VendorTimeout is the fallback per-call timeout when a vendor row has
	// none configured.
	VendorTimeout time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:            envOr("KYCGATE_ADDR", ":8080"),
		Environment:     parseEnvironment(os.Getenv("KYCGATE_ENV")),
		LogLevel:        parseLogLevel(os.Getenv("KYCGATE_LOG_LEVEL")),
		PostgresDSN:     os.Getenv("KYCGATE_POSTGRES_DSN"),
		RedisURL:        os.Getenv("KYCGATE_REDIS_URL"),
		KafkaAuditTopic: envOr("KYCGATE_KAFKA_AUDIT_TOPIC", "kyc.audit"),
		AuditBuffer:     envOrInt("KYCGATE_AUDIT_BUFFER", 1024),
		VendorTimeout:   time.Duration(envOrInt("KYCGATE_VENDOR_TIMEOUT_SECONDS", 30)) * time.Second,
	}
	if brokers := os.Getenv("KYCGATE_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

func parseEnvironment(raw string) Environment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return EnvProduction
	default:
		return EnvUAT
	}
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
