package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveyhub_backend/internals/configs"
	schoolRoute "surveyhub_backend/internals/features/schools/school/route"
)

func SchoolRoutes(private fiber.Router, db *gorm.DB, cfg *configs.Config) {
	schoolRoute.SchoolRoutes(private, db, cfg)
}
