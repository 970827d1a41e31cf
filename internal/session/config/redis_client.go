package config

import (
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a new Redis client for session persistence using the
// provided configuration.
func NewRedisClient(cfg *Config) *redis.Client {
	options := &redis.Options{
		Addr:       cfg.RedisAddr(),
		Password:   cfg.RedisPassword,
		DB:         cfg.RedisDatabase,
		MaxRetries: cfg.RedisMaxRetries,
		PoolSize:   cfg.RedisPoolSize,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,

		ConnMaxIdleTime: 30 * time.Minute,
		ConnMaxLifetime: 1 * time.Hour,
	}

	if cfg.RedisEnableTLS {
		options.TLSConfig = &tls.Config{
			ServerName: cfg.RedisHost,
		}
	}

	return redis.NewClient(options)
}
