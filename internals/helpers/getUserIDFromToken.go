package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"surveyhub_backend/internals/constants"
)

const (
	LocalUserID    = "user_id"
	LocalUserRole  = "userRole"
	LocalUserEmail = "userEmail"
	LocalSchoolID  = "school_id"
	LocalRequestID = "reqid"
)

// GetUserIDFromToken reads the id the auth middleware stored in Locals.
func GetUserIDFromToken(c *fiber.Ctx) (int64, error) {
	switch t := c.Locals(LocalUserID).(type) {
	case int64:
		if t > 0 {
			return t, nil
		}
	case string:
		if id, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil && id > 0 {
			return id, nil
		}
	}
	return 0, fiber.NewError(fiber.StatusUnauthorized, "not signed in")
}

func GetRoleFromToken(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalUserRole).(string)
	return role
}

func IsAdmin(c *fiber.Ctx) bool {
	return GetRoleFromToken(c) == constants.RoleAdmin
}

// GetSchoolIDFromToken is nil for users without a school.
func GetSchoolIDFromToken(c *fiber.Ctx) *int64 {
	if id, ok := c.Locals(LocalSchoolID).(int64); ok && id > 0 {
		return &id
	}
	return nil
}

// ParamID parses a positive numeric route parameter.
func ParamID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Params(name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
