package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the application. It is constructed once
// in main and passed by reference to every component that needs it; nothing
// reads the environment after startup.
type Config struct {
	// Server configuration
	ServerHost string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	// Aptos fullnode configuration
	NodeURL         string `env:"APTOS_NODE_URL" envDefault:"https://fullnode.devnet.aptoslabs.com"`
	APIKey          string `env:"APTOS_API_KEY"`
	ContractAddress string `env:"CONTRACT_ADDRESS" envDefault:"0x631f344549b798ad70cb5ab1842565b082fdfe488b7c6d56a257220222f6a191"`

	// ANS name resolution
	ANSURL string `env:"ANS_API_URL" envDefault:"https://www.aptosnames.com/api/mainnet"`

	// Avatar resolution
	IPFSGateway    string `env:"IPFS_GATEWAY" envDefault:"https://ipfs.io/ipfs"`
	AvatarFallback string `env:"AVATAR_FALLBACK" envDefault:"/default-avatar.png"`
	AvatarMaxDepth int    `env:"AVATAR_MAX_DEPTH" envDefault:"3"`

	// Outbound HTTP
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`

	// Redis cache (optional; empty host disables caching and rate limiting)
	RedisHost     string        `env:"REDIS_HOST"`
	RedisPort     string        `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"60s"`

	// Rate limiting
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	RateLimit       int           `env:"RATE_LIMIT" envDefault:"120"`
}

// New loads configuration from environment variables and validates it.
func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that required fields are present and well-formed.
func Validate(cfg *Config) error {
	if cfg.NodeURL == "" {
		return fmt.Errorf("APTOS_NODE_URL is required")
	}
	if !strings.HasPrefix(cfg.ContractAddress, "0x") {
		return fmt.Errorf("CONTRACT_ADDRESS must be a 0x-prefixed address")
	}
	if cfg.ANSURL == "" {
		return fmt.Errorf("ANS_API_URL is required")
	}
	if cfg.AvatarMaxDepth < 1 {
		return fmt.Errorf("AVATAR_MAX_DEPTH must be at least 1")
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// RedisEnabled reports whether a redis instance was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// RedisAddr returns the host:port pair for the configured redis instance.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
