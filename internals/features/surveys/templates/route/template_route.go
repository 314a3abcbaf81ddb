package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveyhub_backend/internals/constants"
	"surveyhub_backend/internals/features/surveys/templates/controller"
	authMiddleware "surveyhub_backend/internals/middlewares/auth"
)

// TemplateRoutes are builder tools, admin only.
func TemplateRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewTemplateController(db)

	g := r.Group("/survey-templates", authMiddleware.OnlyRoles(constants.RoleErrorAdmin("survey templates"), constants.RoleAdmin))
	g.Get("/", ctl.List)         // GET    /api/survey-templates
	g.Post("/", ctl.Create)      // POST   /api/survey-templates
	g.Get("/:id", ctl.Get)       // GET    /api/survey-templates/:id
	g.Put("/:id", ctl.Update)    // PUT    /api/survey-templates/:id
	g.Delete("/:id", ctl.Delete) // DELETE /api/survey-templates/:id
}
