package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveyhub_backend/internals/configs"
	"surveyhub_backend/internals/logger"
	authMiddleware "surveyhub_backend/internals/middlewares/auth"
	routeDetails "surveyhub_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config) {
	startTime = time.Now()

	BaseRoutes(app, db, cfg)

	api := app.Group("/api")

	// ===================== PUBLIC =====================
	logger.Info("Setting up PUBLIC routes...")
	routeDetails.AuthPublicRoutes(api, db, cfg)

	// ===================== PRIVATE =====================
	// every route below needs a valid token; admin-only routes add OnlyRoles
	logger.Info("Setting up PRIVATE group...")
	private := api.Group("", authMiddleware.AuthJWT(db, cfg.JWTSecret))

	routeDetails.AuthPrivateRoutes(private, db, cfg)

	logger.Info("Mounting User routes...")
	routeDetails.UserRoutes(private, db)

	logger.Info("Mounting School routes...")
	routeDetails.SchoolRoutes(private, db, cfg)

	logger.Info("Mounting Survey routes...")
	routeDetails.SurveyRoutes(private, db, cfg)
}
