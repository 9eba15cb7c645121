package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	resp "blood-donor-service/internal/transport/http/response"
)

// Timeout 给请求 context 加截止时间；d <= 0 时不加
func Timeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		return passthrough
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			abort(c, resp.CodeGatewayTimeout, "timeout")
		}
	}
}
