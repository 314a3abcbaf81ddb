package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveyhub_backend/internals/constants"
	"surveyhub_backend/internals/features/surveys/responses/controller"
	authMiddleware "surveyhub_backend/internals/middlewares/auth"
)

// ResponseRoutes: anyone signed in may submit and read their own responses;
// survey-wide reads and deletes are admin only.
func ResponseRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewResponseController(db)
	admin := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("survey responses"), constants.RoleAdmin)

	g := r.Group("/responses")
	g.Get("/", ctl.List)                               // GET    /api/responses
	g.Post("/", ctl.Create)                            // POST   /api/responses
	g.Get("/form/:formId", admin, ctl.ListByForm)      // GET    /api/responses/form/:formId
	g.Delete("/form/:formId", admin, ctl.DeleteByForm) // DELETE /api/responses/form/:formId
	g.Get("/:id", ctl.Get)                             // GET    /api/responses/:id
	g.Delete("/:id", admin, ctl.Delete)                // DELETE /api/responses/:id
}
