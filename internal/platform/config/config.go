package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "tokengate/pkg/platform/strings"
)

// Server captures process level configuration.
type Server struct {
	Addr        string
	BaseURL     string
	DatabaseURL string
	Redis       RedisConfig
	Telegram    TelegramConfig
	Solana      OracleConfig
	EVM         EVMConfig
	InviteTTL   time.Duration
	Audit       AuditConfig
}

// RedisConfig holds connection settings for the issued-invite store.
// An empty URL disables Redis; the in-memory store is used instead.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// TelegramConfig configures the Bot API client and webhook verification.
type TelegramConfig struct {
	BotToken      string
	APIBaseURL    string
	WebhookSecret string
}

// OracleConfig points at a JSON-RPC ledger endpoint.
type OracleConfig struct {
	RPCURL  string
	Timeout time.Duration
}

// EVMConfig extends OracleConfig with the decimals fallback used when a token
// contract does not declare decimals in its metadata.
type EVMConfig struct {
	RPCURL          string
	Timeout         time.Duration
	DefaultDecimals int
}

// AuditConfig enables the Kafka audit sink when Brokers is non-empty.
type AuditConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:        envOr("TOKENGATE_ADDR", ":8080"),
		BaseURL:     envOr("TOKENGATE_BASE_URL", "http://localhost:8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envIntOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDurationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Telegram: TelegramConfig{
			BotToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
			APIBaseURL:    envOr("TELEGRAM_API_BASE_URL", "https://api.telegram.org"),
			WebhookSecret: os.Getenv("TELEGRAM_WEBHOOK_SECRET"),
		},
		Solana: OracleConfig{
			RPCURL:  os.Getenv("SOLANA_RPC_URL"),
			Timeout: envDurationOr("ORACLE_TIMEOUT", 10*time.Second),
		},
		EVM: EVMConfig{
			RPCURL:          os.Getenv("EVM_RPC_URL"),
			Timeout:         envDurationOr("ORACLE_TIMEOUT", 10*time.Second),
			DefaultDecimals: envIntOr("EVM_DEFAULT_DECIMALS", 18),
		},
		InviteTTL: envDurationOr("INVITE_TTL", time.Hour),
		Audit: AuditConfig{
			Brokers: splitList(os.Getenv("AUDIT_BROKERS")),
			Topic:   envOr("AUDIT_TOPIC", "tokengate.audit"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	return pstrings.DedupeAndTrim(strings.Split(v, ","))
}
