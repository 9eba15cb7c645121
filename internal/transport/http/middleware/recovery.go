package middleware

import (
	"github.com/gin-gonic/gin"

	resp "blood-donor-service/internal/transport/http/response"
)

// Recovered 作为 ginzap.CustomRecoveryWithZap 的回调；堆栈由 ginzap 记录
func Recovered(c *gin.Context, _ any) {
	abort(c, resp.CodeServerError, "internal error")
}
