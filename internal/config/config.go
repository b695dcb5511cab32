package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/storefront/pkg/config"
	"github.com/utafrali/storefront/pkg/database"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"storefront_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"storefront"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Redis (autosuggest cache). Optional; empty host disables caching.
	RedisHost string `env:"REDIS_HOST" envDefault:""`
	RedisPort int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka (domain events). Optional; empty broker list disables publishing.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"" envSeparator:","`

	// JWT
	JWTSecret       string        `env:"JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`
	JWTAccessExpiry time.Duration `env:"JWT_ACCESS_TOKEN_EXPIRY" envDefault:"24h"`

	// Semantic search service. Optional; empty URL disables the proxy routes.
	SemanticSearchURL     string        `env:"SEMANTIC_SEARCH_URL" envDefault:""`
	SemanticSearchTimeout time.Duration `env:"SEMANTIC_SEARCH_TIMEOUT" envDefault:"10s"`

	// Tracing
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}

	// In non-development environments, require an explicitly set, strong JWT secret.
	if cfg.Environment != "development" {
		if cfg.JWTSecret == "change-this-to-a-secure-secret" {
			return nil, fmt.Errorf("JWT_SECRET must be explicitly set via environment variable in %q mode", cfg.Environment)
		}
		if len(cfg.JWTSecret) < 32 {
			return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long, got %d", len(cfg.JWTSecret))
		}
	}

	return cfg, nil
}

// Postgres returns the pool configuration for the configured database.
func (c *Config) Postgres() database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPass
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSL
	return pg
}

// Redis returns the Redis client configuration.
func (c *Config) Redis() database.RedisConfig {
	r := database.DefaultRedisConfig()
	r.Host = c.RedisHost
	r.Port = c.RedisPort
	r.Password = c.RedisPass
	r.DB = c.RedisDB
	return r
}

// KafkaEnabled reports whether event publishing is configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0 && c.KafkaBrokers[0] != ""
}
