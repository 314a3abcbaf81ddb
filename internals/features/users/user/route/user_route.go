package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveyhub_backend/internals/constants"
	"surveyhub_backend/internals/features/users/user/controller"
	authMiddleware "surveyhub_backend/internals/middlewares/auth"
)

// UserAdminRoutes: user management is admin only.
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewUserController(db)

	g := r.Group("/users", authMiddleware.OnlyRoles(constants.RoleErrorAdmin("user management"), constants.RoleAdmin))
	g.Get("/", ctl.List)                       // GET    /api/users
	g.Get("/active", ctl.ListActive)           // GET    /api/users/active
	g.Post("/", ctl.Create)                    // POST   /api/users
	g.Get("/:id", ctl.Get)                     // GET    /api/users/:id
	g.Put("/:id", ctl.Replace)                 // PUT    /api/users/:id
	g.Patch("/:id", ctl.Patch)                 // PATCH  /api/users/:id
	g.Patch("/:id/deactivate", ctl.Deactivate) // PATCH  /api/users/:id/deactivate
	g.Delete("/:id", ctl.Delete)               // DELETE /api/users/:id
}
