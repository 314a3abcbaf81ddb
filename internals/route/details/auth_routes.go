package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveyhub_backend/internals/configs"
	authRoute "surveyhub_backend/internals/features/users/auth/route"
)

func AuthPublicRoutes(api fiber.Router, db *gorm.DB, cfg *configs.Config) {
	authRoute.AuthPublicRoutes(api, db, cfg)
}

func AuthPrivateRoutes(private fiber.Router, db *gorm.DB, cfg *configs.Config) {
	authRoute.AuthPrivateRoutes(private, db, cfg)
}
