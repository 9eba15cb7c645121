package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"blood-donor-service/internal/core/config"
	"blood-donor-service/internal/core/server"
	mdw "blood-donor-service/internal/transport/http/middleware"
)

// NewAPIEngine 公开接口挂在根路径：/register/、/request-blood/、/donors/:blood_type、/hospitals/
func NewAPIEngine(l *zap.Logger, lim config.Limits, mods ...APIModule) *gin.Engine {
	r := server.NewRouter(l)
	useCommon(r, lim)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", mdw.MetricsHandler())

	mountAllAPI(&r.RouterGroup, mods)
	return r
}

func useCommon(r *gin.Engine, lim config.Limits) {
	r.Use(
		mdw.Metrics(),
		mdw.RateLimit(rate.Limit(lim.RPS), lim.Burst),
		mdw.RateLimitPerIP(rate.Limit(lim.PerIPRPS), lim.PerIPBurst),
		mdw.ConcurrencyLimit(lim.MaxConcurrent),
		mdw.MaxBodyBytes(lim.MaxBodyBytes),
		mdw.Timeout(time.Duration(lim.TimeoutSec)*time.Second),
	)
}
