package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "surveyhub_backend/internals/helpers"
)

// OnlyRoles lets the request through when the signed-in role is one of roles.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	if customMessage == "" {
		customMessage = "forbidden: you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		role := helper.GetRoleFromToken(c)
		if role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "unauthorized: missing role information")
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return helper.JsonError(c, fiber.StatusForbidden, customMessage)
	}
}
