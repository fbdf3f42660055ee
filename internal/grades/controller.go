package grades

import (
	"errors"
	"net/http"

	"gradely/internal/shared/middleware"
	"gradely/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// graderID resolves the authenticated user recording the grade.
func graderID(ctx *gin.Context) (uuid.UUID, bool) {
	principal := middleware.CurrentPrincipal(ctx)
	if principal == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(principal.UserID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (c *Controller) CreateGrade(ctx *gin.Context) {
	var req CreateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	grader, ok := graderID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}

	grade, err := c.service.CreateGrade(ctx.Request.Context(), grader, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateGrade):
			response.Error(ctx, http.StatusConflict, err.Error())
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to create grade")
		}
		return
	}

	response.Success(ctx, http.StatusCreated, "Grade created successfully", grade)
}

func (c *Controller) GetGrade(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid grade id")
		return
	}

	grade, err := c.service.GetGrade(ctx.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrGradeNotFound):
			response.Error(ctx, http.StatusNotFound, "Grade not found")
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to get grade")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Grade retrieved successfully", grade)
}

func (c *Controller) ListGrades(ctx *gin.Context) {
	var query GradeListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := c.service.ListGrades(ctx.Request.Context(), query)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list grades")
		return
	}

	response.Success(ctx, http.StatusOK, "Grades retrieved successfully", result)
}

func (c *Controller) GetStudentTermSummary(ctx *gin.Context) {
	studentID, err := uuid.Parse(ctx.Param("studentId"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid student id")
		return
	}

	term := ctx.Query("term")
	if term == "" {
		response.Error(ctx, http.StatusBadRequest, "Query parameter 'term' is required")
		return
	}

	summary, err := c.service.GetStudentTermSummary(ctx.Request.Context(), studentID, term)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to get student summary")
		return
	}

	response.Success(ctx, http.StatusOK, "Student summary retrieved successfully", summary)
}

func (c *Controller) UpdateGrade(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid grade id")
		return
	}

	var req UpdateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	grader, ok := graderID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}

	grade, err := c.service.UpdateGrade(ctx.Request.Context(), grader, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrGradeNotFound):
			response.Error(ctx, http.StatusNotFound, "Grade not found")
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to update grade")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Grade updated successfully", grade)
}

func (c *Controller) DeleteGrade(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid grade id")
		return
	}

	if err := c.service.DeleteGrade(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrGradeNotFound):
			response.Error(ctx, http.StatusNotFound, "Grade not found")
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to delete grade")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Grade deleted successfully", nil)
}
