package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "blood-donor-service/internal/transport/http/response"
)

// ConcurrencyLimit 限制同时在处理的请求数（保护 DB 下游）；max <= 0 时不限
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	if max <= 0 {
		return passthrough
	}
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			abort(c, resp.CodeServiceBusy, "server busy")
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
