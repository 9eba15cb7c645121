package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes 限制请求体大小；超限在绑定时以 *http.MaxBytesError 暴露
func MaxBodyBytes(n int64) gin.HandlerFunc {
	if n <= 0 {
		return passthrough
	}
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
