package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

var global *Config

// Config holds all environment backed configuration for synapse-admin.
type Config struct {
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// PostgreSQL
	DatabaseURL   string `env:"DATABASE_URL,notEmpty"`
	AutoMigrate   bool   `env:"AUTO_MIGRATE" envDefault:"true"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`

	// Cache backing the preset test slots and debug traces
	CacheType string `env:"CACHE_TYPE" envDefault:"redis"` // redis | memory
	RedisURL  string `env:"REDIS_URL" envDefault:"redis://redis:6379/0"`

	// Admin gate. Empty key disables enforcement.
	AdminAPIKey string `env:"ADMIN_API_KEY"`

	// Secret used to encrypt provider API keys at rest
	ProviderSecret string `env:"PROVIDER_SECRET" envDefault:"synapse-provider-secret-2025"`

	// Model capability registry
	CapabilitiesFile string `env:"CAPABILITIES_FILE"`

	// Preset validation runs
	TestSlotTTL    time.Duration `env:"TEST_SLOT_TTL" envDefault:"1h"`
	TestRunTimeout time.Duration `env:"TEST_RUN_TIMEOUT" envDefault:"5m"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	IdleTimeout    time.Duration `env:"IDLE_TIMEOUT" envDefault:"120s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.CacheType = strings.ToLower(strings.TrimSpace(cfg.CacheType))

	if cfg.CacheType != "redis" && cfg.CacheType != "memory" {
		return nil, errors.New("CACHE_TYPE must be redis or memory")
	}
	if cfg.CacheType == "redis" && cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL must be provided when CACHE_TYPE is redis")
	}

	global = cfg
	return cfg, nil
}

// GetGlobal returns the global config instance for backwards compatibility.
func GetGlobal() *Config {
	return global
}
