package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 成功返回中附加的字段
type Response map[string]interface{}

// OK 统一成功返回：{"ok": true, ...}
func OK(c *gin.Context, data Response) {
	body := gin.H{"ok": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Error 统一错误返回：{"error": msg}
func Error(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, gin.H{"error": msg})
}

// ErrorDetail 带诊断信息的错误返回：{"error": msg, "detail": detail}
func ErrorDetail(c *gin.Context, httpStatus int, msg, detail string) {
	if detail == "" {
		Error(c, httpStatus, msg)
		return
	}
	c.AbortWithStatusJSON(httpStatus, gin.H{"error": msg, "detail": detail})
}
