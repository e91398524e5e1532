package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"booking-platform/internal/service"
	"booking-platform/internal/transport/http/ez"
)

type ReservationHandler struct {
	svc *service.ReservationService
	log *zap.Logger
}

func NewReservationHandler(svc *service.ReservationService, l *zap.Logger) *ReservationHandler {
	return &ReservationHandler{svc: svc, log: l}
}

func (ReservationHandler) Priority() int { return 40 }

type reservationIn struct {
	ID int64 `uri:"id" json:"-"`
	reservationDTO
}

func (h *ReservationHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	ez.RegisterAction(e, ez.Action[reservationIn, reservationDTO]{
		Method: http.MethodPost, Path: "/reservations", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *reservationIn) (reservationDTO, error) {
			r, err := in.toDomain()
			if err != nil {
				return reservationDTO{}, err
			}
			r.ID = 0
			admitted, err := h.svc.Admit(c.Request.Context(), r)
			if err != nil {
				return reservationDTO{}, err
			}
			return toReservationDTO(admitted), nil
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, []reservationDTO]{
		Method: http.MethodGet, Path: "/reservations",
		Handler: func(c *gin.Context, _ *struct{}) ([]reservationDTO, error) {
			rows, err := h.svc.GetAll(c.Request.Context())
			if err != nil {
				return nil, err
			}
			return toReservationDTOs(rows), nil
		},
	})
	ez.RegisterAction(e, ez.Action[idIn, reservationDTO]{
		Method: http.MethodGet, Path: "/reservations/:id", Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idIn) (reservationDTO, error) {
			r, err := h.svc.GetByID(c.Request.Context(), in.ID)
			if err != nil {
				return reservationDTO{}, err
			}
			return toReservationDTO(r), nil
		},
	})
	ez.RegisterAction(e, ez.Action[reservationIn, reservationDTO]{
		Method: http.MethodPut, Path: "/reservations/:id", Binder: ez.BindURI | ez.BindJSON,
		Handler: func(c *gin.Context, in *reservationIn) (reservationDTO, error) {
			r, err := in.toDomain()
			if err != nil {
				return reservationDTO{}, err
			}
			r.ID = in.ID
			updated, err := h.svc.Update(c.Request.Context(), r)
			if err != nil {
				return reservationDTO{}, err
			}
			return toReservationDTO(updated), nil
		},
	})
	ez.RegisterAction(e, ez.Action[idIn, deletedOut]{
		Method: http.MethodDelete, Path: "/reservations/:id", Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idIn) (deletedOut, error) {
			ok, err := h.svc.DeleteByID(c.Request.Context(), in.ID)
			return deletedOut{Deleted: ok}, err
		},
	})
	ez.RegisterAction(e, ez.Action[idIn, []reservationDTO]{
		Method: http.MethodGet, Path: "/users/:id/reservations", Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idIn) ([]reservationDTO, error) {
			rows, err := h.svc.GetByUser(c.Request.Context(), in.ID)
			if err != nil {
				return nil, err
			}
			return toReservationDTOs(rows), nil
		},
	})
	ez.RegisterAction(e, ez.Action[idIn, reservationDTO]{
		Method: http.MethodGet, Path: "/users/:id/reservations/latest", Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idIn) (reservationDTO, error) {
			r, err := h.svc.GetLatestByUser(c.Request.Context(), in.ID)
			if err != nil {
				return reservationDTO{}, err
			}
			return toReservationDTO(r), nil
		},
	})
}

func (h *ReservationHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g, h.log)
	ez.RegisterAction(e, ez.Action[struct{}, countOut]{
		Method: http.MethodDelete, Path: "/reservations",
		Handler: func(c *gin.Context, _ *struct{}) (countOut, error) {
			n, err := h.svc.DeleteAll(c.Request.Context())
			return countOut{Deleted: n}, err
		},
	})
}
