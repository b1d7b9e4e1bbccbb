package middleware

import (
	authsvc "semdex-backend/internal/application/auth"
	"semdex-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const (
	userLocal = "user"
	authLocal = "auth"
)

// RequireAuth ensures a well-formed user is in the session. Returns 401 with standard error format if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := authsvc.VerifyUser(c.Locals(userLocal))
		if err != nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		c.Locals(authLocal, identity)
		return c.Next()
	}
}

// GetUser returns the raw session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// AuthUser returns the identity attached by RequireAuth.
func AuthUser(c *fiber.Ctx) *authsvc.SessionIdentity {
	identity, _ := c.Locals(authLocal).(*authsvc.SessionIdentity)
	return identity
}
