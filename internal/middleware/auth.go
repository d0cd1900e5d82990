package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"internship-portal/internal/domain"
	"internship-portal/internal/service/auth"
)

const IdentityContextKey = "identity"

// TokenValidator is the part of the auth service the middleware needs.
type TokenValidator interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
}

func AuthRequired(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := validator.ValidateAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		c.Locals(IdentityContextKey, claims.Identity())
		return c.Next()
	}
}

// GetIdentity returns the caller set by AuthRequired.
func GetIdentity(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(IdentityContextKey).(domain.Identity)
	return identity, ok
}
