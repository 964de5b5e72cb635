package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"keywordmatrix/internal/handlers/api"
	"keywordmatrix/internal/models"
)

// AuthMiddleware guards the dashboard with the OIDC session when login is
// enabled.
type AuthMiddleware struct {
	enabled bool
}

// NewAuthMiddleware creates a new auth middleware instance. When enabled is
// false every request passes through anonymously.
func NewAuthMiddleware(enabled bool) *AuthMiddleware {
	return &AuthMiddleware{enabled: enabled}
}

// RequireAuth ensures the user is authenticated, redirecting to /auth/login
// if not.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	if !m.enabled {
		return c.Next()
	}

	user := userFromSession(c)
	if user == nil {
		if sess := session.FromContext(c); sess != nil {
			sess.Set("redirect_after_login", c.OriginalURL())
		}
		if c.Get("HX-Request") == "true" {
			c.Set("HX-Redirect", "/auth/login")
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.Redirect().To("/auth/login")
	}

	c.Locals("user", user)
	return c.Next()
}

// RequireAPIAuth is RequireAuth for JSON clients: it answers 401 instead of
// redirecting.
func (m *AuthMiddleware) RequireAPIAuth(c fiber.Ctx) error {
	if !m.enabled {
		return c.Next()
	}

	user := userFromSession(c)
	if user == nil {
		return api.Failure(c, fiber.StatusUnauthorized, "authentication required")
	}

	c.Locals("user", user)
	return c.Next()
}

func userFromSession(c fiber.Ctx) *models.User {
	sess := session.FromContext(c)
	if sess == nil {
		return nil
	}

	sub, _ := sess.Get(models.SessionUserSub).(string)
	if sub == "" {
		return nil
	}
	email, _ := sess.Get(models.SessionUserEmail).(string)
	name, _ := sess.Get(models.SessionUserName).(string)
	return &models.User{Sub: sub, Email: email, Name: name}
}
