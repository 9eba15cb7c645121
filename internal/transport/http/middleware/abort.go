package middleware

import (
	"github.com/gin-gonic/gin"

	resp "blood-donor-service/internal/transport/http/response"
)

func abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(resp.Status(code), resp.DetailOf(code, msg))
}
