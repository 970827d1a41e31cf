package http

import (
	"context"
	"strings"
	"time"

	"ev-storefront/internal/session/usecase"
	"ev-storefront/internal/shared/contextkeys"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// SessionMiddleware provides session-aware middleware for Fiber
type SessionMiddleware struct {
	usecase    usecase.SessionUsecaseInterface
	cookieName string
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(uc usecase.SessionUsecaseInterface, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{
		usecase:    uc,
		cookieName: cookieName,
	}
}

// CORS middleware with credentials enabled for the storefront origin
func (m *SessionMiddleware) CORS(allowOrigins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	})
}

// SecurityHeaders adds security headers
func (m *SessionMiddleware) SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}

// RateLimiter creates rate limiting middleware for the auth endpoints
func (m *SessionMiddleware) RateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               10,              // 10 requests
		Expiration:        1 * time.Minute, // per minute
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.Get("X-Forwarded-For", c.IP())
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		},
	})
}

// RequestID middleware
func (m *SessionMiddleware) RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     "X-Request-ID",
		ContextKey: string(contextkeys.RequestIDKey),
	})
}

// RequireSession resolves the session token and rejects requests without a
// live session. On success the user identity and the backend bearer token are
// injected into the request context.
func (m *SessionMiddleware) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := m.extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		session := m.usecase.GetSession(c.Context(), token)
		if session == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Session expired or invalid",
			})
		}

		ctx := c.UserContext()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, session.User.ID)
		ctx = context.WithValue(ctx, contextkeys.UserEmailKey, session.User.Email)
		ctx = context.WithValue(ctx, contextkeys.UserRoleKey, session.User.Role)
		ctx = context.WithValue(ctx, contextkeys.SessionIDKey, session.ID)
		ctx = context.WithValue(ctx, contextkeys.AuthTokenKey, session.Token)

		c.SetUserContext(ctx)
		return c.Next()
	}
}

// OptionalSession injects session context when a valid token is present and
// lets the request through either way. Guest browsing uses this path.
func (m *SessionMiddleware) OptionalSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := m.extractToken(c)
		if token == "" {
			return c.Next()
		}

		session := m.usecase.GetSession(c.Context(), token)
		if session == nil {
			return c.Next()
		}

		ctx := c.UserContext()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, session.User.ID)
		ctx = context.WithValue(ctx, contextkeys.UserEmailKey, session.User.Email)
		ctx = context.WithValue(ctx, contextkeys.UserRoleKey, session.User.Role)
		ctx = context.WithValue(ctx, contextkeys.SessionIDKey, session.ID)
		ctx = context.WithValue(ctx, contextkeys.AuthTokenKey, session.Token)

		c.SetUserContext(ctx)
		return c.Next()
	}
}

// RequireRole requires a live session whose user carries the given role.
func (m *SessionMiddleware) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := m.extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		session := m.usecase.GetSession(c.Context(), token)
		if session == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Session expired or invalid",
			})
		}

		if session.User.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Insufficient permissions",
			})
		}

		ctx := c.UserContext()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, session.User.ID)
		ctx = context.WithValue(ctx, contextkeys.UserEmailKey, session.User.Email)
		ctx = context.WithValue(ctx, contextkeys.UserRoleKey, session.User.Role)
		ctx = context.WithValue(ctx, contextkeys.SessionIDKey, session.ID)
		ctx = context.WithValue(ctx, contextkeys.AuthTokenKey, session.Token)

		c.SetUserContext(ctx)
		return c.Next()
	}
}

// extractToken extracts the session token from Authorization header, cookie,
// or query parameter (for WebSocket upgrades).
func (m *SessionMiddleware) extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	if token := c.Cookies(m.cookieName); token != "" {
		return token
	}

	return c.Query("token")
}
