package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/bhushanhacker007/solar-burji-app/internal/config"
	"github.com/bhushanhacker007/solar-burji-app/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyHeader carries the shared secret; ?api_key= is accepted for plain links.
const APIKeyHeader = "X-API-KEY"

// APIKeyMiddleware 校验共享密钥，失败直接返回 401，不读取请求体。
// OPTIONS 预检请求不需要密钥。
func APIKeyMiddleware(cfg config.AuthConfig) gin.HandlerFunc {
	check := keyChecker(cfg)
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		// 1) Header: X-API-KEY
		provided := c.GetHeader(APIKeyHeader)
		// 2) URL 查询参数 ?api_key=xxx（用于 CSV 下载等无法自定义 Header 的场景）
		if provided == "" {
			provided = c.Query("api_key")
		}

		if provided == "" || !check(provided) {
			util.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Next()
	}
}

func keyChecker(cfg config.AuthConfig) func(string) bool {
	if cfg.APIKeyHash != "" {
		hash := []byte(cfg.APIKeyHash)
		return func(provided string) bool {
			return bcrypt.CompareHashAndPassword(hash, []byte(provided)) == nil
		}
	}
	if cfg.APIKey == "" {
		return func(string) bool { return false }
	}
	want := []byte(cfg.APIKey)
	return func(provided string) bool {
		return subtle.ConstantTimeCompare([]byte(provided), want) == 1
	}
}
