package http

import (
	"time"

	"ev-storefront/internal/session/config"
	"ev-storefront/internal/session/usecase"
	"ev-storefront/internal/shared/errors"
	"ev-storefront/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
)

// SessionHTTPHandler handles HTTP requests for authentication and sessions
type SessionHTTPHandler struct {
	usecase usecase.SessionUsecaseInterface
	cfg     *config.Config
}

// NewSessionHTTPHandler creates a new session HTTP handler
func NewSessionHTTPHandler(uc usecase.SessionUsecaseInterface, cfg *config.Config) *SessionHTTPHandler {
	return &SessionHTTPHandler{
		usecase: uc,
		cfg:     cfg,
	}
}

// SetupRoutes sets up authentication routes with middleware
func (h *SessionHTTPHandler) SetupRoutes(router fiber.Router, middleware *SessionMiddleware) {
	// Public routes, rate limited. The limiter is attached per route so it
	// never throttles anything else registered under the same prefix.
	limiter := middleware.RateLimiter()
	router.Post("/register", limiter, h.Register)
	router.Post("/login", limiter, h.Login)

	// Protected routes
	router.Post("/logout", h.Logout)
	me := router.Group("/me", middleware.RequireSession())
	me.Get("/", h.GetCurrentUser)
	me.Get("/searches", h.RecentSearches)
}

// RegisterRequest carries the register payload
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest carries the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
func (h *SessionHTTPHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.usecase.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Type == errors.ErrorTypeConflict {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Email already registered",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.setCookie(c, result.SessionToken)

	return c.Status(fiber.StatusCreated).JSON(result)
}

// Login handles user login
func (h *SessionHTTPHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.usecase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.IsAuthentication(err) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid email or password",
			})
		}
		if errors.IsUpstream(err) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Store service is unavailable",
			})
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.setCookie(c, result.SessionToken)

	return c.JSON(result)
}

// Logout handles user logout. It succeeds even without a live session so the
// browser can always reach the logged-out state.
func (h *SessionHTTPHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(h.cfg.CookieName)
	if token == "" {
		token = bearerToken(c)
	}

	if err := h.usecase.Logout(c.Context(), token); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.clearCookie(c)

	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the session's user
func (h *SessionHTTPHandler) GetCurrentUser(c *fiber.Ctx) error {
	token := c.Cookies(h.cfg.CookieName)
	if token == "" {
		token = bearerToken(c)
	}

	user := h.usecase.CurrentUser(c.Context(), token)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	return c.JSON(user)
}

// RecentSearches returns the session's recent search terms
func (h *SessionHTTPHandler) RecentSearches(c *fiber.Ctx) error {
	sessionID, err := utils.GetSessionIDFromContext(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	return c.JSON(fiber.Map{
		"searches": h.usecase.RecentSearches(c.Context(), sessionID),
	})
}

// Helper methods

func bearerToken(c *fiber.Ctx) string {
	const prefix = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}

func (h *SessionHTTPHandler) setCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     h.cfg.CookiePath,
		Domain:   h.cfg.CookieDomain,
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
		Secure:   h.cfg.CookieSecure,
		HTTPOnly: h.cfg.CookieHTTPOnly,
		SameSite: h.cfg.CookieSameSite,
		Expires:  time.Now().Add(h.cfg.SessionTTL),
	})
}

func (h *SessionHTTPHandler) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     h.cfg.CookiePath,
		Domain:   h.cfg.CookieDomain,
		MaxAge:   -1,
		Secure:   h.cfg.CookieSecure,
		HTTPOnly: h.cfg.CookieHTTPOnly,
		SameSite: h.cfg.CookieSameSite,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
