package users

import (
	"github.com/gin-gonic/gin"
)

// SetupUserRoutes registers the admin-only user management routes. The
// /admin prefix is locked to ROLE_ADMIN by the authorization guard, so no
// extra role middleware is needed here.
func SetupUserRoutes(router *gin.RouterGroup, controller *Controller) {
	adminUsers := router.Group("/admin/users")
	{
		adminUsers.GET("", controller.ListUsers)                     // GET /api/v1/admin/users
		adminUsers.GET("/:id", controller.GetUser)                   // GET /api/v1/admin/users/:id
		adminUsers.POST("/:id/roles", controller.AssignRole)         // POST /api/v1/admin/users/:id/roles
		adminUsers.DELETE("/:id/roles/:role", controller.RevokeRole) // DELETE /api/v1/admin/users/:id/roles/:role
		adminUsers.PATCH("/:id/active", controller.SetActive)        // PATCH /api/v1/admin/users/:id/active
	}
}
