package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"booking-platform/internal/core/config"
	"booking-platform/internal/core/server"
	mdw "booking-platform/internal/transport/http/middleware"
	resp "booking-platform/internal/transport/http/response"
)

// Limits bounds what one request may cost.
type Limits struct {
	RPS         float64
	Burst       int
	MaxBody     int64
	MaxInFlight int64
	Timeout     time.Duration
}

func LimitsFrom(h config.HTTP) Limits {
	return Limits{
		RPS:         h.RateLimitRPS,
		Burst:       h.RateLimitBurst,
		MaxBody:     h.MaxBodyBytes,
		MaxInFlight: h.MaxInFlight,
		Timeout:     time.Duration(h.HandlerTimeoutSec) * time.Second,
	}
}

// ReadyCheck reports whether a dependency is usable.
type ReadyCheck func(ctx context.Context) error

type EngineOptions struct {
	Server      server.Options
	Limits      Limits
	ReadyChecks map[string]ReadyCheck
}

func NewAPIEngine(l *zap.Logger, reg *Registry, o EngineOptions) *gin.Engine {
	r := server.NewEngine(o.Server)

	r.Use(mdw.RequestID(), mdw.AccessLog(l), mdw.Recovery(l), mdw.Metrics())
	if o.Limits.RPS > 0 {
		r.Use(mdw.RateLimitPerIP(rate.Limit(o.Limits.RPS), o.Limits.Burst))
	}
	if o.Limits.MaxInFlight > 0 {
		r.Use(mdw.ConcurrencyLimit(o.Limits.MaxInFlight))
	}
	if o.Limits.MaxBody > 0 {
		r.Use(mdw.MaxBodyBytes(o.Limits.MaxBody))
	}
	if o.Limits.Timeout > 0 {
		r.Use(mdw.Timeout(o.Limits.Timeout))
	}

	mountReadyChecks(r, o.ReadyChecks)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, "route not found"))
	})

	reg.MountAPI(r.Group("/api/v1"))
	return r
}

func mountReadyChecks(r *gin.Engine, checks map[string]ReadyCheck) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(gin.H{"ok": 1})) })
	r.GET("/ready", func(c *gin.Context) {
		failed := gin.H{}
		for name, p := range checks {
			if err := p(c.Request.Context()); err != nil {
				failed[name] = err.Error()
			}
		}
		if len(failed) > 0 {
			c.JSON(http.StatusServiceUnavailable, resp.ErrorWith(resp.CodeServiceUnavailable, "not ready", failed))
			return
		}
		c.JSON(http.StatusOK, resp.OK(gin.H{"ready": true}))
	})
}
