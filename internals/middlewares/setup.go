package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"surveyhub_backend/internals/configs"
	"surveyhub_backend/internals/middlewares/logger"
)

func SetupMiddlewares(app *fiber.App, cfg *configs.Config) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestID(cfg.RequestTimeout))
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware(cfg.CORSOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	if cfg.RateLimitMax > 0 {
		app.Use(GlobalRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow))
	}
}
