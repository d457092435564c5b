package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"studentdash/internal/config"
)

// Session keys written at login.
const (
	SessionUserSub      = "user_sub"
	SessionUserEmail    = "user_email"
	SessionUserName     = "user_name"
	SessionRedirectPath = "redirect_after_login"
)

// User is the signed-in viewer.
type User struct {
	Sub   string
	Email string
	Name  string
}

// DisplayName returns the name, falling back to the email.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// AuthMiddleware handles user authentication via sessions. When OIDC is not
// configured every request is let through.
type AuthMiddleware struct {
	enabled bool
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{enabled: cfg.AuthEnabled()}
}

// RequireAuth ensures the user is authenticated, redirecting to /login if not.
// API requests get a 401 instead of a redirect.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	if !m.enabled {
		return c.Next()
	}

	user := userFromSession(c)
	if user == nil {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status": "error",
				"error":  "authentication required",
			})
		}
		if sess := session.FromContext(c); sess != nil {
			sess.Set(SessionRedirectPath, c.OriginalURL())
		}
		return c.Redirect().To("/login")
	}

	c.Locals("user", user)
	return c.Next()
}

// OptionalAuth loads the user if authenticated, but doesn't require authentication.
func (m *AuthMiddleware) OptionalAuth(c fiber.Ctx) error {
	if user := userFromSession(c); user != nil {
		c.Locals("user", user)
	}
	return c.Next()
}

// CurrentUser returns the user loaded by RequireAuth or OptionalAuth.
func CurrentUser(c fiber.Ctx) *User {
	user, _ := c.Locals("user").(*User)
	return user
}

func userFromSession(c fiber.Ctx) *User {
	sess := session.FromContext(c)
	if sess == nil {
		return nil
	}

	sub, _ := sess.Get(SessionUserSub).(string)
	if sub == "" {
		return nil
	}
	email, _ := sess.Get(SessionUserEmail).(string)
	name, _ := sess.Get(SessionUserName).(string)

	return &User{Sub: sub, Email: email, Name: name}
}
