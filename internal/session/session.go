package session

import (
	"fmt"

	sessionhttp "ev-storefront/internal/session/adapter/http"
	"ev-storefront/internal/session/adapter/persistence"
	"ev-storefront/internal/session/adapter/security"
	"ev-storefront/internal/session/config"
	"ev-storefront/internal/session/domain/repository"
	"ev-storefront/internal/session/usecase"
	"ev-storefront/internal/shared/eventbus"
	"ev-storefront/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Module represents the complete session module
type Module struct {
	store    repository.SessionStore
	tokenSvc repository.TokenService
	usecase  usecase.SessionUsecaseInterface
	handler  *sessionhttp.SessionHTTPHandler
	config   *config.Config
}

// NewModule creates a new session module instance. The Redis client may be
// nil, in which case sessions live in process memory (development mode).
func NewModule(
	redisClient *redis.Client,
	authAPI usecase.AuthAPI,
	bus eventbus.EventBusInterface,
	cfg *config.Config,
	log logger.Logger,
) (*Module, error) {
	var store repository.SessionStore
	if redisClient != nil {
		store = persistence.NewRedisSessionStore(redisClient, cfg.SessionTTL, log)
	} else {
		store = persistence.NewMemorySessionStore()
	}

	tokenSvc, err := security.NewJWTokenService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	sessionUsecase := usecase.NewSessionUsecase(store, tokenSvc, authAPI, bus, cfg, log)
	handler := sessionhttp.NewSessionHTTPHandler(sessionUsecase, cfg)

	return &Module{
		store:    store,
		tokenSvc: tokenSvc,
		usecase:  sessionUsecase,
		handler:  handler,
		config:   cfg,
	}, nil
}

// RegisterRoutes registers session routes with the provided router
func (m *Module) RegisterRoutes(router fiber.Router) {
	m.handler.SetupRoutes(router, m.GetMiddleware())
}

// GetUsecase returns the session usecase for external access
func (m *Module) GetUsecase() usecase.SessionUsecaseInterface {
	return m.usecase
}

// GetMiddleware returns the session middleware
func (m *Module) GetMiddleware() *sessionhttp.SessionMiddleware {
	return sessionhttp.NewSessionMiddleware(m.usecase, m.config.CookieName)
}
