package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the session module.
type Config struct {
	// Session store backend: "redis" for shared state across gateway
	// replicas, "memory" for single-process development.
	StoreBackend string `env:"SESSION_STORE" envDefault:"redis"`

	// Redis Configuration
	RedisHost       string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort       string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword   string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDatabase   int    `env:"REDIS_DATABASE" envDefault:"0"`
	RedisMaxRetries int    `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	RedisPoolSize   int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RedisEnableTLS  bool   `env:"REDIS_ENABLE_TLS" envDefault:"false"`

	// Session token configuration. Sessions mirror the storefront's 7-day
	// login window; the signed token and the stored record share the TTL.
	JWTSecretKey string        `env:"JWT_SECRET_KEY,required"`
	JWTIssuer    string        `env:"JWT_ISSUER" envDefault:"ev-storefront-gateway"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"168h"`

	// Recent-search history kept per session.
	RecentSearchLimit int `env:"RECENT_SEARCH_LIMIT" envDefault:"5"`

	// Cookie Configuration
	CookieName     string `env:"COOKIE_NAME" envDefault:"ev_session"`
	CookiePath     string `env:"COOKIE_PATH" envDefault:"/"`
	CookieDomain   string `env:"COOKIE_DOMAIN" envDefault:""`
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"false"`
	CookieHTTPOnly bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite string `env:"COOKIE_SAME_SITE" envDefault:"Lax"` // "Lax", "Strict", "None"
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load session configuration from environment: " + err.Error() +
			". Please ensure all required environment variables are set.")
	}

	if cfg.JWTSecretKey == "" {
		return nil, errors.New("jwt_secret_key is required")
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 168 * time.Hour
	}
	if cfg.RecentSearchLimit <= 0 {
		cfg.RecentSearchLimit = 5
	}

	cfg.StoreBackend = strings.ToLower(cfg.StoreBackend)
	if cfg.StoreBackend != "redis" && cfg.StoreBackend != "memory" {
		return nil, errors.New("session_store must be 'redis' or 'memory'")
	}

	// Normalize and validate CookieSameSite
	switch strings.ToLower(cfg.CookieSameSite) {
	case "lax":
		cfg.CookieSameSite = "Lax"
	case "strict":
		cfg.CookieSameSite = "Strict"
	case "none":
		cfg.CookieSameSite = "None"
	default:
		return nil, errors.New("cookie_same_site must be one of 'Lax', 'Strict', or 'None'")
	}

	return cfg, nil
}

// RedisAddr returns the host:port address for the Redis client.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
