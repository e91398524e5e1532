package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"booking-platform/internal/domain"
	"booking-platform/internal/service"
	"booking-platform/internal/transport/http/ez"
)

type AccommodationHandler struct {
	svc *service.AccommodationService
	log *zap.Logger
}

func NewAccommodationHandler(svc *service.AccommodationService, l *zap.Logger) *AccommodationHandler {
	return &AccommodationHandler{svc: svc, log: l}
}

func (AccommodationHandler) Priority() int { return 30 }

type accommodationIn struct {
	ID int64 `uri:"id" json:"-"`
	accommodationDTO
}

// accommodationQuery filters the listing; the first non-empty filter wins.
type accommodationQuery struct {
	Name   string `form:"name"`
	Rooms  int    `form:"rooms"`
	From   string `form:"from"`
	To     string `form:"to"`
	HostID int64  `form:"hostId"`
}

type averageOut struct {
	AverageBedCount float64 `json:"averageBedCount"`
}

func (h *AccommodationHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	ez.RegisterAction(e, ez.Action[accommodationIn, accommodationDTO]{
		Method: http.MethodPost, Path: "/accommodations", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *accommodationIn) (accommodationDTO, error) {
			a, err := in.toDomain()
			if err != nil {
				return accommodationDTO{}, err
			}
			a.ID = 0
			created, err := h.svc.Create(c.Request.Context(), a)
			if err != nil {
				return accommodationDTO{}, err
			}
			return toAccommodationDTO(created), nil
		},
	})
	ez.RegisterAction(e, ez.Action[accommodationQuery, []accommodationDTO]{
		Method: http.MethodGet, Path: "/accommodations", Binder: ez.BindQuery,
		Handler: h.list,
	})
	ez.RegisterAction(e, ez.Action[idIn, accommodationDTO]{
		Method: http.MethodGet, Path: "/accommodations/:id", Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idIn) (accommodationDTO, error) {
			a, err := h.svc.FindByID(c.Request.Context(), in.ID)
			if err != nil {
				return accommodationDTO{}, err
			}
			return toAccommodationDTO(a), nil
		},
	})
	ez.RegisterAction(e, ez.Action[accommodationIn, accommodationDTO]{
		Method: http.MethodPut, Path: "/accommodations/:id", Binder: ez.BindURI | ez.BindJSON,
		Handler: func(c *gin.Context, in *accommodationIn) (accommodationDTO, error) {
			a, err := in.toDomain()
			if err != nil {
				return accommodationDTO{}, err
			}
			a.ID = in.ID
			updated, err := h.svc.Update(c.Request.Context(), a)
			if err != nil {
				return accommodationDTO{}, err
			}
			return toAccommodationDTO(updated), nil
		},
	})
	ez.RegisterAction(e, ez.Action[idIn, deletedOut]{
		Method: http.MethodDelete, Path: "/accommodations/:id", Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idIn) (deletedOut, error) {
			ok, err := h.svc.DeleteByID(c.Request.Context(), in.ID)
			return deletedOut{Deleted: ok}, err
		},
	})
	ez.RegisterAction(e, ez.Action[idIn, []accommodationDTO]{
		Method: http.MethodGet, Path: "/hosts/:id/accommodations", Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idIn) ([]accommodationDTO, error) {
			rows, err := h.svc.FindByHost(c.Request.Context(), in.ID)
			if err != nil {
				return nil, err
			}
			return toAccommodationDTOs(rows), nil
		},
	})
}

func (h *AccommodationHandler) list(c *gin.Context, in *accommodationQuery) ([]accommodationDTO, error) {
	ctx := c.Request.Context()
	var (
		rows []domain.Accommodation
		err  error
	)
	switch {
	case in.Name != "":
		rows, err = h.svc.FindByName(ctx, in.Name)
	case in.Rooms != 0:
		rows, err = h.svc.FindByRoomCount(ctx, in.Rooms)
	case in.From != "" || in.To != "":
		from, perr := parseDay("from", in.From)
		if perr != nil {
			return nil, perr
		}
		to, perr := parseDay("to", in.To)
		if perr != nil {
			return nil, perr
		}
		rows, err = h.svc.FindByAvailabilityRange(ctx, from, to)
	case in.HostID != 0:
		rows, err = h.svc.FindByHost(ctx, in.HostID)
	default:
		rows, err = h.svc.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return toAccommodationDTOs(rows), nil
}

func (h *AccommodationHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	// DELETE /accommodations?name= removes by name, without it removes all.
	ez.RegisterAction(e, ez.Action[nameQuery, countOut]{
		Method: http.MethodDelete, Path: "/accommodations", Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *nameQuery) (countOut, error) {
			ctx := c.Request.Context()
			if in.Name != "" {
				n, err := h.svc.DeleteByName(ctx, in.Name)
				return countOut{Deleted: n}, err
			}
			n, err := h.svc.DeleteAll(ctx)
			return countOut{Deleted: n}, err
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, averageOut]{
		Method: http.MethodGet, Path: "/accommodations/average-beds",
		Handler: func(c *gin.Context, _ *struct{}) (averageOut, error) {
			avg, err := h.svc.AverageBedCount(c.Request.Context())
			return averageOut{AverageBedCount: avg}, err
		},
	})
}
