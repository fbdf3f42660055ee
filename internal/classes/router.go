package classes

import (
	"gradely/internal/shared/middleware"
	"gradely/internal/users"

	"github.com/gin-gonic/gin"
)

// SetupClassRoutes registers class routes. Reads are open to any
// authenticated principal; writes require admin or teacher.
func SetupClassRoutes(router *gin.RouterGroup, controller *Controller) {
	classRoutes := router.Group("/classes")
	{
		classRoutes.GET("", controller.ListClasses) // GET /api/v1/classes
		classRoutes.GET("/:id", controller.GetClass) // GET /api/v1/classes/:id

		staffOnly := middleware.RequireAnyAuthority(
			users.RoleAdmin.Authority().String(),
			users.RoleTeacher.Authority().String(),
		)
		classRoutes.POST("", staffOnly, controller.CreateClass)       // POST /api/v1/classes
		classRoutes.PUT("/:id", staffOnly, controller.UpdateClass)    // PUT /api/v1/classes/:id
		classRoutes.DELETE("/:id", staffOnly, controller.DeleteClass) // DELETE /api/v1/classes/:id
	}
}
