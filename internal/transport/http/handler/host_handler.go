package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"booking-platform/internal/domain"
	"booking-platform/internal/service"
	"booking-platform/internal/transport/http/ez"
)

type HostHandler struct {
	svc *service.HostService
	log *zap.Logger
}

func NewHostHandler(svc *service.HostService, l *zap.Logger) *HostHandler {
	return &HostHandler{svc: svc, log: l}
}

func (HostHandler) Priority() int { return 20 }

type hostCreateIn struct {
	UserID int64 `json:"userId"`
}

type hostUpdateIn struct {
	ID     int64        `uri:"id" json:"-"`
	UserID int64        `json:"userId"`
	User   *domain.User `json:"user"`
}

func (h *HostHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	ez.RegisterAction(e, ez.Action[hostCreateIn, *domain.Host]{
		Method: http.MethodPost, Path: "/hosts", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *hostCreateIn) (*domain.Host, error) {
			return h.svc.Create(c.Request.Context(), in.UserID)
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, []domain.Host]{
		Method: http.MethodGet, Path: "/hosts",
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Host, error) {
			return h.svc.FindAll(c.Request.Context())
		},
	})
	ez.RegisterAction(e, ez.Action[idIn, *domain.Host]{
		Method: http.MethodGet, Path: "/hosts/:id", Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idIn) (*domain.Host, error) {
			return h.svc.FindByID(c.Request.Context(), in.ID)
		},
	})
	ez.RegisterAction(e, ez.Action[idIn, *domain.Host]{
		Method: http.MethodGet, Path: "/users/:id/host", Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idIn) (*domain.Host, error) {
			return h.svc.FindByUserID(c.Request.Context(), in.ID)
		},
	})
	ez.RegisterAction(e, ez.Action[hostUpdateIn, *domain.Host]{
		Method: http.MethodPut, Path: "/hosts/:id", Binder: ez.BindURI | ez.BindJSON,
		Handler: func(c *gin.Context, in *hostUpdateIn) (*domain.Host, error) {
			return h.svc.Update(c.Request.Context(), &domain.Host{ID: in.ID, UserID: in.UserID, User: in.User})
		},
	})
	ez.RegisterAction(e, ez.Action[idIn, deletedOut]{
		Method: http.MethodDelete, Path: "/hosts/:id", Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idIn) (deletedOut, error) {
			if err := h.svc.DeleteByID(c.Request.Context(), in.ID); err != nil {
				return deletedOut{}, err
			}
			return deletedOut{Deleted: true}, nil
		},
	})
}

func (h *HostHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g, h.log)
	ez.RegisterAction(e, ez.Action[struct{}, countOut]{
		Method: http.MethodDelete, Path: "/hosts",
		Handler: func(c *gin.Context, _ *struct{}) (countOut, error) {
			n, err := h.svc.DeleteAll(c.Request.Context())
			return countOut{Deleted: n}, err
		},
	})
}
