package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveyhub_backend/internals/features/surveys/dashboards/controller"
)

// DashboardRoutes are per user; any signed-in role may keep dashboards.
func DashboardRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewDashboardController(db)

	g := r.Group("/dashboards")
	g.Get("/", ctl.List)         // GET    /api/dashboards
	g.Post("/", ctl.Save)        // POST   /api/dashboards (upsert)
	g.Get("/:id", ctl.Get)       // GET    /api/dashboards/:id
	g.Delete("/:id", ctl.Delete) // DELETE /api/dashboards/:id
}
