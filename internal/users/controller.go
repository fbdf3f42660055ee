package users

import (
	"errors"
	"net/http"

	"gradely/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) ListUsers(ctx *gin.Context) {
	var query UserListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := c.service.ListUsers(ctx.Request.Context(), query)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list users")
		return
	}

	response.Success(ctx, http.StatusOK, "Users retrieved successfully", result)
}

func (c *Controller) GetUser(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := c.service.GetUser(ctx.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(ctx, http.StatusNotFound, "User not found")
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to get user")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "User retrieved successfully", user)
}

func (c *Controller) AssignRole(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req AssignRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	user, err := c.service.AssignRole(ctx.Request.Context(), id, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(ctx, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrRoleNotFound), errors.Is(err, ErrInvalidRole):
			response.Error(ctx, http.StatusNotFound, "Role not found")
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to assign role")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Role assigned successfully", user)
}

func (c *Controller) RevokeRole(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := c.service.RevokeRole(ctx.Request.Context(), id, ctx.Param("role"))
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(ctx, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrRoleNotFound):
			response.Error(ctx, http.StatusNotFound, "Role not found")
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to revoke role")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Role revoked successfully", user)
}

func (c *Controller) SetActive(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	if err := c.service.SetActive(ctx.Request.Context(), id, *req.Active); err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(ctx, http.StatusNotFound, "User not found")
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to update account status")
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Account status updated successfully", nil)
}
