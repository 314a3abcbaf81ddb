package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveyhub_backend/internals/configs"
	"surveyhub_backend/internals/features/users/auth/controller"
	rateLimiter "surveyhub_backend/internals/middlewares"
)

// AuthPublicRoutes mounts the sign-in endpoints under /api/auth.
func AuthPublicRoutes(r fiber.Router, db *gorm.DB, cfg *configs.Config) {
	ctl := controller.NewAuthController(db, cfg)

	g := r.Group("/auth")
	g.Post("/google", rateLimiter.LoginRateLimiter(), ctl.LoginGoogle) // POST /api/auth/google
	g.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)        // POST /api/auth/login
}

// AuthPrivateRoutes expects an authenticated router.
func AuthPrivateRoutes(r fiber.Router, db *gorm.DB, cfg *configs.Config) {
	ctl := controller.NewAuthController(db, cfg)
	r.Get("/auth/me", ctl.Me) // GET /api/auth/me
}
