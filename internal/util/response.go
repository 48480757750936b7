package util

import "github.com/gin-gonic/gin"

// Error writes the standard error body.
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{
		"error": msg,
	})
}
