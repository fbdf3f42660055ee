package students

import (
	"gradely/internal/shared/middleware"
	"gradely/internal/users"

	"github.com/gin-gonic/gin"
)

// SetupStudentRoutes registers student record routes. Reads are open to
// any authenticated principal; writes require admin or teacher.
func SetupStudentRoutes(router *gin.RouterGroup, controller *Controller) {
	studentRoutes := router.Group("/students")
	{
		studentRoutes.GET("", controller.ListStudents)    // GET /api/v1/students
		studentRoutes.GET("/:id", controller.GetStudent)  // GET /api/v1/students/:id

		staffOnly := middleware.RequireAnyAuthority(
			users.RoleAdmin.Authority().String(),
			users.RoleTeacher.Authority().String(),
		)
		studentRoutes.POST("", staffOnly, controller.CreateStudent)       // POST /api/v1/students
		studentRoutes.PUT("/:id", staffOnly, controller.UpdateStudent)    // PUT /api/v1/students/:id
		studentRoutes.DELETE("/:id", staffOnly, controller.DeleteStudent) // DELETE /api/v1/students/:id
	}
}
