package middleware

import (
	"github.com/gofiber/fiber/v2"

	"internship-portal/internal/domain"
)

func RequireRole(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := GetIdentity(c)
		if !ok {
			return Unauthorized("Invalid user")
		}

		for _, role := range roles {
			if identity.Role == role {
				return c.Next()
			}
		}

		return Forbidden("Insufficient permissions for this operation")
	}
}
