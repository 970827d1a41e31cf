package di

import (
	"context"
	"fmt"
	"sync"

	"ev-storefront/internal/backend"
	"ev-storefront/internal/cart"
	cartusecase "ev-storefront/internal/cart/usecase"
	"ev-storefront/internal/catalog"
	"ev-storefront/internal/checkout"
	checkoutconfig "ev-storefront/internal/checkout/config"
	"ev-storefront/internal/realtime"
	"ev-storefront/internal/session"
	sessionconfig "ev-storefront/internal/session/config"
	"ev-storefront/internal/shared/eventbus"
	"ev-storefront/internal/shared/logger"

	"github.com/redis/go-redis/v9"
)

// Container wires the gateway's modules together with proper lifecycle
// management. Initialization order matters: the backend client and event bus
// come first, then the modules that depend on them.
type Container struct {
	mu sync.RWMutex

	// Shared infrastructure
	Logger  logger.Logger
	Bus     *eventbus.EventBus
	Redis   *redis.Client
	Backend *backend.Client

	// Configuration
	SessionConfig  *sessionconfig.Config
	CheckoutConfig *checkoutconfig.Config
	BackendConfig  *backend.Config

	// Module instances
	SessionModule  *session.Module
	CartModule     *cart.Module
	CheckoutModule *checkout.Module
	CatalogModule  *catalog.Module
	RealtimeModule *realtime.Module

	fees *shippingFees
}

// shippingFees breaks the construction cycle between the cart and checkout
// modules: cart prices its summary with checkout's fee rule, checkout clears
// the cart after an order. The delegate is bound once checkout exists.
type shippingFees struct {
	mu       sync.RWMutex
	delegate cartusecase.FeeCalculator
}

func (f *shippingFees) bind(delegate cartusecase.FeeCalculator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delegate = delegate
}

func (f *shippingFees) ShippingFee(subtotal float64) float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.delegate == nil {
		return 0
	}
	return f.delegate.ShippingFee(subtotal)
}

// NewContainer creates an empty DI container.
func NewContainer() *Container {
	return &Container{}
}

// Initialize loads configuration and constructs every module. It is the
// single entry point main uses.
func (c *Container) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Logger == nil {
		c.Logger = logger.NewLogger()
	}

	sessionCfg, err := sessionconfig.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load session configuration: %w", err)
	}
	c.SessionConfig = sessionCfg

	checkoutCfg, err := checkoutconfig.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load checkout configuration: %w", err)
	}
	c.CheckoutConfig = checkoutCfg

	backendCfg, err := backend.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load backend configuration: %w", err)
	}
	c.BackendConfig = backendCfg

	c.Bus = eventbus.NewEventBus(c.Logger)
	c.Backend = backend.NewClient(backendCfg, c.Logger)

	if sessionCfg.StoreBackend == "redis" {
		c.Redis = sessionconfig.NewRedisClient(sessionCfg)
	}

	sessionModule, err := session.NewModule(c.Redis, c.Backend, c.Bus, sessionCfg, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create session module: %w", err)
	}
	c.SessionModule = sessionModule

	// Cart is built against the late-bound fee calculator so it can exist
	// before checkout does.
	c.fees = &shippingFees{}
	c.CartModule = cart.NewModule(c.Backend, c.fees, c.Bus, c.Logger)

	c.CheckoutModule = checkout.NewModule(c.Backend, c.CartModule.GetUsecase(), c.Bus, checkoutCfg, c.Logger)
	c.fees.bind(c.CheckoutModule.GetUsecase())

	c.CatalogModule = catalog.NewModule(c.Backend, c.SessionModule.GetUsecase(), c.Logger)
	c.RealtimeModule = realtime.NewModule(c.Bus, c.Logger)

	return nil
}

// HealthCheck verifies the gateway's upstream dependencies.
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Redis != nil {
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis health check failed: %w", err)
		}
	}

	if c.Backend != nil {
		if err := c.Backend.Ping(ctx); err != nil {
			return fmt.Errorf("backend health check failed: %w", err)
		}
	}

	return nil
}

// Close releases container resources.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
		c.Redis = nil
	}

	return nil
}
