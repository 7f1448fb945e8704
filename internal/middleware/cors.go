package middleware

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// MethodOverrideHeader lets clients that cannot send PUT/DELETE tunnel them through POST.
const MethodOverrideHeader = "X-HTTP-Method-Override"

// CORS allows the configured origins (default "*") and the API key and override headers.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{"Origin", "Content-Type", APIKeyHeader, MethodOverrideHeader},
		ExposeHeaders: []string{"Content-Disposition", RequestIDHeader},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
