package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blood-donor-service/internal/core/config"
	"blood-donor-service/internal/core/server"
)

// NewAdminEngine 管理端只读接口，挂在 /admin/v1
func NewAdminEngine(l *zap.Logger, lim config.Limits, mods ...AdminModule) *gin.Engine {
	r := server.NewRouter(l)
	useCommon(r, lim)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	mountAllAdmin(r.Group("/admin/v1"), mods)
	return r
}
