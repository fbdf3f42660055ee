package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Envelope{
		Success: false,
		Message: message,
	})
}

func ErrorWithDetails(c *gin.Context, code int, message string, errors interface{}) {
	c.JSON(code, Envelope{
		Success: false,
		Message: message,
		Errors:  errors,
	})
}
