package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"booking-platform/internal/domain"
	"booking-platform/internal/service"
	"booking-platform/internal/transport/http/ez"
)

type UserHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserHandler(svc *service.UserService, l *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: l}
}

func (UserHandler) Priority() int { return 10 }

type userIn struct {
	ID      int64  `uri:"id" json:"-"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (in *userIn) toDomain() *domain.User {
	return &domain.User{ID: in.ID, Name: in.Name, Surname: in.Surname, Email: in.Email, Address: in.Address}
}

type userQuery struct {
	Email string `form:"email"`
	Name  string `form:"name"`
}

func (h *UserHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	ez.RegisterAction(e, ez.Action[userIn, *domain.User]{
		Method: http.MethodPost, Path: "/users", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *userIn) (*domain.User, error) {
			return h.svc.Create(c.Request.Context(), in.toDomain())
		},
	})
	// GET /users?email= or ?name= narrows to a single user.
	ez.RegisterAction(e, ez.Action[userQuery, any]{
		Method: http.MethodGet, Path: "/users", Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *userQuery) (any, error) {
			ctx := c.Request.Context()
			switch {
			case in.Email != "":
				return h.svc.FindByEmail(ctx, in.Email)
			case in.Name != "":
				return h.svc.FindByName(ctx, in.Name)
			}
			return h.svc.FindAll(ctx)
		},
	})
	ez.RegisterAction(e, ez.Action[idIn, *domain.User]{
		Method: http.MethodGet, Path: "/users/:id", Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idIn) (*domain.User, error) {
			return h.svc.FindByID(c.Request.Context(), in.ID)
		},
	})
	ez.RegisterAction(e, ez.Action[userIn, *domain.User]{
		Method: http.MethodPut, Path: "/users/:id", Binder: ez.BindURI | ez.BindJSON,
		Handler: func(c *gin.Context, in *userIn) (*domain.User, error) {
			return h.svc.Update(c.Request.Context(), in.toDomain())
		},
	})
	ez.RegisterAction(e, ez.Action[idIn, deletedOut]{
		Method: http.MethodDelete, Path: "/users/:id", Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idIn) (deletedOut, error) {
			ok, err := h.svc.DeleteByID(c.Request.Context(), in.ID)
			return deletedOut{Deleted: ok}, err
		},
	})
}

type nameQuery struct {
	Name string `form:"name"`
}

func (h *UserHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	// DELETE /users?name= removes by name, without it removes everyone.
	ez.RegisterAction(e, ez.Action[nameQuery, countOut]{
		Method: http.MethodDelete, Path: "/users", Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *nameQuery) (countOut, error) {
			ctx := c.Request.Context()
			if in.Name != "" {
				if err := h.svc.DeleteByName(ctx, in.Name); err != nil {
					return countOut{}, err
				}
				return countOut{Deleted: 1}, nil
			}
			n, err := h.svc.DeleteAll(ctx)
			return countOut{Deleted: n}, err
		},
	})
}
