package grades

import (
	"gradely/internal/shared/middleware"
	"gradely/internal/users"

	"github.com/gin-gonic/gin"
)

// SetupGradeRoutes registers grade routes. Reads are open to any
// authenticated principal; writes require admin or teacher.
func SetupGradeRoutes(router *gin.RouterGroup, controller *Controller) {
	gradeRoutes := router.Group("/grades")
	{
		gradeRoutes.GET("", controller.ListGrades)                                   // GET /api/v1/grades
		gradeRoutes.GET("/:id", controller.GetGrade)                                 // GET /api/v1/grades/:id
		gradeRoutes.GET("/students/:studentId/summary", controller.GetStudentTermSummary) // GET /api/v1/grades/students/:studentId/summary?term=

		staffOnly := middleware.RequireAnyAuthority(
			users.RoleAdmin.Authority().String(),
			users.RoleTeacher.Authority().String(),
		)
		gradeRoutes.POST("", staffOnly, controller.CreateGrade)       // POST /api/v1/grades
		gradeRoutes.PUT("/:id", staffOnly, controller.UpdateGrade)    // PUT /api/v1/grades/:id
		gradeRoutes.DELETE("/:id", staffOnly, controller.DeleteGrade) // DELETE /api/v1/grades/:id
	}
}
