package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"surveyhub_backend/internals/helpers/patch"
	"surveyhub_backend/internals/logger"
)

// StoreError maps persistence failures onto the error envelope. Anything
// unrecognised is logged with the request id and shown as a generic failure.
func StoreError(c *fiber.Ctx, err error, entity string) error {
	switch {
	case errors.Is(err, patch.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return JsonError(c, fiber.StatusNotFound, entity+" not found")
	case errors.Is(err, patch.ErrNothingToUpdate):
		return JsonError(c, fiber.StatusBadRequest, "nothing to update")
	case errors.Is(err, patch.ErrNoFilters):
		return JsonError(c, fiber.StatusBadRequest, "at least one search filter is required")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return JsonError(c, fiber.StatusConflict, entity+" already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return JsonError(c, fiber.StatusConflict, entity+" is referenced by other records")
	}
	LogInternalError(c, err, entity)
	return JsonError(c, fiber.StatusInternalServerError, "operation failed")
}

func LogInternalError(c *fiber.Ctx, err error, entity string) {
	logger.WithFields(logrus.Fields{
		"reqid":  c.Locals(LocalRequestID),
		"method": c.Method(),
		"path":   c.Path(),
		"entity": entity,
	}).WithError(err).Error("request failed")
}

// ErrorHandler is the app-wide fiber error handler. *fiber.Error keeps its
// status and message; everything else is hidden behind a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	LogInternalError(c, err, "")
	return JsonError(c, fiber.StatusInternalServerError, "operation failed")
}
