package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveyhub_backend/internals/constants"
	"surveyhub_backend/internals/features/surveys/survey/controller"
	"surveyhub_backend/internals/features/surveys/survey/service"
	authMiddleware "surveyhub_backend/internals/middlewares/auth"
)

/*
Mount on an authenticated router. Parents read only what VisibleTo allows;
everything that writes is admin only.
*/
func SurveyRoutes(r fiber.Router, db *gorm.DB, notify service.Notifier) {
	ctl := controller.NewSurveyController(db, notify)
	admin := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("survey management"), constants.RoleAdmin)

	g := r.Group("/surveys")
	g.Get("/", ctl.List)                      // GET    /api/surveys
	g.Get("/:id", ctl.Get)                    // GET    /api/surveys/:id
	g.Get("/:id/questions", ctl.Questions)    // GET    /api/surveys/:id/questions
	g.Get("/:id/summary", admin, ctl.Summary) // GET    /api/surveys/:id/summary

	g.Post("/", admin, ctl.Create)               // POST   /api/surveys
	g.Put("/:id", admin, ctl.Update)             // PUT    /api/surveys/:id
	g.Patch("/:id/status", admin, ctl.SetStatus) // PATCH  /api/surveys/:id/status
	g.Delete("/:id", admin, ctl.Delete)          // DELETE /api/surveys/:id

	// builder edits (draft only)
	pages := g.Group("/:id/pages", admin)
	pages.Post("/", ctl.AddPage)
	pages.Patch("/:pageId", ctl.UpdatePage)
	pages.Delete("/:pageId", ctl.RemovePage)
	pages.Post("/:pageId/elements", ctl.AddElement)
	pages.Patch("/:pageId/elements/:name", ctl.UpdateElement)
	pages.Delete("/:pageId/elements/:name", ctl.RemoveElement)
	pages.Put("/:pageId/elements/:name/kind", ctl.ChangeElementKind)
}
