package students

import (
	"errors"
	"net/http"

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

func (c *Controller) CreateStudent(ctx *gin.Context) {
	var req CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	student, err := c.service.CreateStudent(ctx.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEnrollment):
			response.Error(ctx, http.StatusConflict, err.Error())
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to create student")
		}
		return
	}

	response.Success(ctx, http.StatusCreated, "Student created successfully", student)
}

func (c *Controller) GetStudent(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid student id")
		return
	}

	student, err := c.service.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrStudentNotFound):
			response.Error(ctx, http.StatusNotFound, "Student not found")
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to get student")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Student retrieved successfully", student)
}

func (c *Controller) ListStudents(ctx *gin.Context) {
	var query StudentListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := c.service.ListStudents(ctx.Request.Context(), query)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list students")
		return
	}

	response.Success(ctx, http.StatusOK, "Students retrieved successfully", result)
}

func (c *Controller) UpdateStudent(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid student id")
		return
	}

	var req UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	student, err := c.service.UpdateStudent(ctx.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrStudentNotFound):
			response.Error(ctx, http.StatusNotFound, "Student not found")
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to update student")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Student updated successfully", student)
}

func (c *Controller) DeleteStudent(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid student id")
		return
	}

	if err := c.service.DeleteStudent(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrStudentNotFound):
			response.Error(ctx, http.StatusNotFound, "Student not found")
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to delete student")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Student deleted successfully", nil)
}
