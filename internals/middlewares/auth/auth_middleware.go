package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	helper "surveyhub_backend/internals/helpers"
	"surveyhub_backend/internals/logger"
)

// AuthJWT verifies the bearer token (header or access_token cookie), checks
// expiry, then reloads the user so deactivation and role changes apply
// immediately. user_id, userRole, userEmail and school_id land in Locals.
func AuthJWT(db *gorm.DB, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		if secret == "" {
			logger.Error("[AUTH] JWT secret is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "authentication is not configured")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}); err != nil {
			logger.Debugf("[AUTH] parse token: %v", err)
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized - invalid token")
		}

		if err := validateTokenExpiry(claims, clockSkew); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized - token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized - invalid or missing user id")
		}

		u, err := loadActiveUser(c.UserContext(), db, userID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized - user not found")
		case errors.Is(err, errUserInactive):
			return fiber.NewError(fiber.StatusForbidden, "your account has been deactivated")
		case err != nil:
			helper.LogInternalError(c, err, "user")
			return fiber.NewError(fiber.StatusInternalServerError, "operation failed")
		}

		storeUserToLocals(c, u)
		return c.Next()
	}
}
