package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	helper "surveyhub_backend/internals/helpers"
	"surveyhub_backend/internals/logger"
)

// RecoveryMiddleware turns panics into 500s and logs them at error level.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.WithFields(logrus.Fields{
				"reqid":  c.Locals(helper.LocalRequestID),
				"method": c.Method(),
				"path":   c.Path(),
			}).Error(fmt.Sprintf("panic: %v", e))
		},
	})
}
