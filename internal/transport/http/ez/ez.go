// Package ez registers typed gin handlers: bind the input, call the handler,
// write the {code,msg,data} envelope.
package ez

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"booking-platform/internal/transport/http/middleware"
	resp "booking-platform/internal/transport/http/response"
)

// Binder selects the input sources, combinable with |.
type Binder uint8

const (
	BindNone  Binder = 0
	BindURI   Binder = 1 << iota
	BindQuery
	BindJSON
)

type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Handler func(c *gin.Context, in *I) (O, error)
}

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) *EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return &EZ{g: g, log: l}
}

func bind(c *gin.Context, b Binder, in any) error {
	if b&BindURI != 0 {
		if err := c.ShouldBindUri(in); err != nil {
			return err
		}
	}
	if b&BindQuery != 0 {
		if err := c.ShouldBindQuery(in); err != nil {
			return err
		}
	}
	if b&BindJSON != 0 {
		if err := c.ShouldBindJSON(in); err != nil {
			return err
		}
	}
	return nil
}

func RegisterAction[I any, O any](e *EZ, a Action[I, O]) {
	e.g.Handle(a.Method, a.Path, func(c *gin.Context) {
		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				Fail(c, e.log, &AErr{Code: resp.CodeRequestTooLarge, Msg: "request body too large"})
				return
			}
			Fail(c, e.log, BadRequest(err.Error()))
			return
		}
		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, e.log, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	})
}

// Fail writes err as an envelope whose code is also the HTTP status.
func Fail(c *gin.Context, l *zap.Logger, err error) {
	ae := FromError(err)
	if ae.Code >= resp.CodeServerError {
		l.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("rid", middleware.RequestIDFrom(c)),
			zap.Error(err))
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(resp.Status(ae.Code), resp.ErrorWith(ae.Code, ae.Msg, ae.Data))
}
