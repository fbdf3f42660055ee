package auth

import (
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers the session endpoints. All of them are public
// in the guard table: login/refresh authenticate by payload, logout and
// validate read whatever Bearer token is present, and /token/info is a
// deliberately public diagnostic.
func SetupAuthRoutes(router *gin.RouterGroup, controller *Controller) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", controller.Login)      // POST /api/v1/auth/login
		authGroup.POST("/refresh", controller.Refresh)  // POST /api/v1/auth/refresh
		authGroup.POST("/logout", controller.Logout)    // POST /api/v1/auth/logout
		authGroup.GET("/validate", controller.Validate) // GET /api/v1/auth/validate
	}

	router.GET("/token/info", controller.TokenInfo) // GET /api/v1/token/info
}
