package handler

import (
	"net/http"

	"github.com/bhushanhacker007/solar-burji-app/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ServiceName is reported by the index endpoint.
const ServiceName = "Solar & Burji API"

// Index 列出可用接口（无需鉴权）
func Index(endpoints []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":      ServiceName,
			"status":    "ok",
			"endpoints": endpoints,
		})
	}
}

// Health pings the database.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			util.ErrorDetail(c, http.StatusServiceUnavailable, "database unavailable", err.Error())
			return
		}
		util.OK(c, nil)
	}
}
