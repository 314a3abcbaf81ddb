package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "surveyhub_backend/internals/features/users/user/route"
)

func UserRoutes(private fiber.Router, db *gorm.DB) {
	userRoute.UserAdminRoutes(private, db)
}
