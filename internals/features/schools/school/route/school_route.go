package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveyhub_backend/internals/configs"
	"surveyhub_backend/internals/constants"
	"surveyhub_backend/internals/features/schools/school/controller"
	authMiddleware "surveyhub_backend/internals/middlewares/auth"
)

/*
Mount on an authenticated router, e.g. SchoolRoutes(api.Group("", AuthJWT(...)), db, cfg).
Reads are open to every signed-in user; writes are admin only.
*/
func SchoolRoutes(r fiber.Router, db *gorm.DB, cfg *configs.Config) {
	ctl := controller.NewSchoolController(db, cfg)
	admin := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("school management"), constants.RoleAdmin)

	g := r.Group("/schools")
	g.Get("/", ctl.List)                      // GET    /api/schools?q=&page=&per_page=
	g.Post("/search", ctl.Search)             // POST   /api/schools/search
	g.Get("/:id", ctl.Get)                    // GET    /api/schools/:id
	g.Post("/", admin, ctl.Create)            // POST   /api/schools
	g.Put("/:id", admin, ctl.Replace)         // PUT    /api/schools/:id
	g.Patch("/:id", admin, ctl.Patch)         // PATCH  /api/schools/:id
	g.Delete("/:id", admin, ctl.Delete)       // DELETE /api/schools/:id
	g.Put("/:id/logo", admin, ctl.UploadLogo) // PUT    /api/schools/:id/logo
}
