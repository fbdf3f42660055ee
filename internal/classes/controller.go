package classes

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

func (c *Controller) CreateClass(ctx *gin.Context) {
	var req CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	class, err := c.service.CreateClass(ctx.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateCode):
			response.Error(ctx, http.StatusConflict, err.Error())
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to create class")
		}
		return
	}

	response.Success(ctx, http.StatusCreated, "Class created successfully", class)
}

func (c *Controller) GetClass(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid class id")
		return
	}

	class, err := c.service.GetClass(ctx.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrClassNotFound):
			response.Error(ctx, http.StatusNotFound, "Class not found")
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to get class")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Class retrieved successfully", class)
}

func (c *Controller) ListClasses(ctx *gin.Context) {
	var query ClassListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := c.service.ListClasses(ctx.Request.Context(), query)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list classes")
		return
	}

	response.Success(ctx, http.StatusOK, "Classes retrieved successfully", result)
}

func (c *Controller) UpdateClass(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid class id")
		return
	}

	var req UpdateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	class, err := c.service.UpdateClass(ctx.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrClassNotFound):
			response.Error(ctx, http.StatusNotFound, "Class not found")
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to update class")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Class updated successfully", class)
}

func (c *Controller) DeleteClass(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid class id")
		return
	}

	if err := c.service.DeleteClass(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrClassNotFound):
			response.Error(ctx, http.StatusNotFound, "Class not found")
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to delete class")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Class deleted successfully", nil)
}
