package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Options struct {
	Name        string
	Env         string
	CORSOrigins []string
}

// NewEngine returns a bare gin engine with CORS applied. Request middleware
// is added by the router for each surface.
func NewEngine(o Options) *gin.Engine {
	if o.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if len(o.CORSOrigins) == 0 {
		r.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowOrigins = o.CORSOrigins
		cc.AddAllowHeaders("X-Request-ID")
		cc.AddExposeHeaders("X-Request-ID")
		r.Use(cors.New(cc))
	}
	return r
}

func StartHTTP(srv *http.Server, l *zap.Logger) error {
	l.Info("http starting", zap.String("addr", srv.Addr))
	return srv.ListenAndServe()
}

func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    rt,
		WriteTimeout:   wt,
		IdleTimeout:    it,
		MaxHeaderBytes: 1 << 20,
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }

// BaseURL is addr as something a human can click.
func BaseURL(host string, port int) string {
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return "http://" + Addr(host, port)
}
