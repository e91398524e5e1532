package router

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"booking-platform/internal/core/server"
	mdw "booking-platform/internal/transport/http/middleware"
)

// NewAdminEngine serves bulk deletes, cache control and /metrics. It is
// meant to listen on a private address only.
func NewAdminEngine(l *zap.Logger, reg *Registry, o EngineOptions) *gin.Engine {
	r := server.NewEngine(o.Server)

	r.Use(
		mdw.RequestID(),
		ginzap.GinzapWithConfig(l, &ginzap.Config{
			TimeFormat: time.RFC3339,
			UTC:        true,
			SkipPaths:  []string{"/health", "/metrics"},
		}),
		mdw.Recovery(l),
		mdw.RateLimit(rate.Limit(50), 100),
	)
	if o.Limits.Timeout > 0 {
		r.Use(mdw.Timeout(o.Limits.Timeout))
	}

	mountReadyChecks(r, o.ReadyChecks)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	reg.MountAdmin(r.Group("/admin/v1"))
	return r
}
