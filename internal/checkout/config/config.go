package config

import (
	"errors"

	"github.com/caarlos0/env/v6"
)

// Config holds the checkout fee policy. Defaults mirror the storefront:
// flat 500 shipping, waived once the subtotal exceeds 50 000.
type Config struct {
	FreeShippingThreshold float64 `env:"FREE_SHIPPING_THRESHOLD" envDefault:"50000"`
	ShippingFlatFee       float64 `env:"SHIPPING_FLAT_FEE" envDefault:"500"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load checkout configuration from environment: " + err.Error())
	}

	if cfg.FreeShippingThreshold < 0 {
		return nil, errors.New("free_shipping_threshold cannot be negative")
	}
	if cfg.ShippingFlatFee < 0 {
		return nil, errors.New("shipping_flat_fee cannot be negative")
	}

	return cfg, nil
}
