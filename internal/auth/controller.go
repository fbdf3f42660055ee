package auth

import (
	"errors"
	"net/http"

	"gradely/internal/shared/middleware"
	"gradely/internal/shared/utils/response"
	"gradely/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
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

func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(ctx, http.StatusUnauthorized, "Invalid username or password")
		case errors.Is(err, ErrAccountDisabled):
			response.Error(ctx, http.StatusUnauthorized, "Account is disabled")
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to login")
		}
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

func (c *Controller) Refresh(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.ErrorWithDetails(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	resp, err := c.service.Refresh(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenWrongType):
			response.Error(ctx, http.StatusUnauthorized, "Token is not a refresh token")
		case errors.Is(err, ErrAccountDisabled):
			response.Error(ctx, http.StatusUnauthorized, "Account is disabled")
		case errors.Is(err, users.ErrUserNotFound):
			response.Error(ctx, http.StatusUnauthorized, "User not found")
		case isTokenError(err):
			response.Error(ctx, http.StatusUnauthorized, "Invalid or expired refresh token")
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to refresh token")
		}
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Logout always answers 200; only an unexpected internal failure (e.g.
// the deny-list store being unreachable) maps to 500.
func (c *Controller) Logout(ctx *gin.Context) {
	token, _ := middleware.BearerToken(ctx)

	if err := c.service.Logout(ctx.Request.Context(), token); err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to logout")
		return
	}

	response.Success(ctx, http.StatusOK, "Logged out successfully", nil)
}

func (c *Controller) Validate(ctx *gin.Context) {
	token, _ := middleware.BearerToken(ctx)
	ctx.JSON(http.StatusOK, ValidateResponse{Valid: c.service.ValidateToken(token)})
}

// TokenInfo is an intentionally public diagnostic endpoint: it projects
// the decoded claims of whatever token is presented, expired or not.
func (c *Controller) TokenInfo(ctx *gin.Context) {
	token, ok := middleware.BearerToken(ctx)
	if !ok {
		response.Error(ctx, http.StatusBadRequest, "Authorization header with Bearer token is required")
		return
	}

	info, err := c.service.TokenInfo(token)
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Token could not be decoded")
		return
	}

	ctx.JSON(http.StatusOK, info)
}

func isTokenError(err error) bool {
	return errors.Is(err, ErrTokenEmpty) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenBadSignature) ||
		errors.Is(err, ErrTokenUnsupportedAlg) ||
		errors.Is(err, ErrTokenRevoked)
}
