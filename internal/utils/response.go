package utils

import (
	"github.com/gin-gonic/gin"
)

// 错误响应统一为 {"message": "..."}，与前端约定保持一致，
// 成功响应直接返回业务数据，不额外包壳。

// Message 返回带提示语的成功响应
func Message(c *gin.Context, message string) {
	c.JSON(200, gin.H{"message": message})
}

// Error 返回错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

// BadRequest 返回400错误
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// Forbidden 返回403错误
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(c, 403, message)
}

// NotFound 返回404错误
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(c, 404, message)
}

// InternalServerError 返回500错误
func InternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "Server error"
	}
	Error(c, 500, message)
}
