package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"booking-platform/internal/domain"
	"booking-platform/internal/service"
	"booking-platform/internal/transport/http/ez"
)

type FeedbackHandler struct {
	svc *service.FeedbackService
	log *zap.Logger
}

func NewFeedbackHandler(svc *service.FeedbackService, l *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{svc: svc, log: l}
}

func (FeedbackHandler) Priority() int { return 50 }

type feedbackIn struct {
	ID              int64  `uri:"id" json:"-"`
	Title           string `json:"title"`
	Body            string `json:"body"`
	Score           int    `json:"score"`
	ReservationID   int64  `json:"reservationId"`
	UserID          int64  `json:"userId"`
	AccommodationID int64  `json:"accommodationId"`
}

func (in *feedbackIn) toDomain() *domain.Feedback {
	return &domain.Feedback{
		ID: in.ID, Title: in.Title, Body: in.Body, Score: in.Score,
		ReservationID: in.ReservationID, UserID: in.UserID, AccommodationID: in.AccommodationID,
	}
}

type feedbackQuery struct {
	AccommodationID int64 `form:"accommodationId"`
	UserID          int64 `form:"userId"`
	Score           *int  `form:"score"`
}

func (h *FeedbackHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	ez.RegisterAction(e, ez.Action[feedbackIn, *domain.Feedback]{
		Method: http.MethodPost, Path: "/feedbacks", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *feedbackIn) (*domain.Feedback, error) {
			return h.svc.Create(c.Request.Context(), in.toDomain())
		},
	})
	ez.RegisterAction(e, ez.Action[feedbackQuery, []domain.Feedback]{
		Method: http.MethodGet, Path: "/feedbacks", Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *feedbackQuery) ([]domain.Feedback, error) {
			ctx := c.Request.Context()
			switch {
			case in.AccommodationID != 0:
				return h.svc.FindByAccommodation(ctx, in.AccommodationID)
			case in.UserID != 0:
				return h.svc.FindByUser(ctx, in.UserID)
			case in.Score != nil:
				return h.svc.FindByScore(ctx, *in.Score)
			}
			return h.svc.FindAll(ctx)
		},
	})
	ez.RegisterAction(e, ez.Action[idIn, *domain.Feedback]{
		Method: http.MethodGet, Path: "/feedbacks/:id", Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idIn) (*domain.Feedback, error) {
			return h.svc.FindByID(c.Request.Context(), in.ID)
		},
	})
	ez.RegisterAction(e, ez.Action[feedbackIn, *domain.Feedback]{
		Method: http.MethodPut, Path: "/feedbacks/:id", Binder: ez.BindURI | ez.BindJSON,
		Handler: func(c *gin.Context, in *feedbackIn) (*domain.Feedback, error) {
			return h.svc.Update(c.Request.Context(), in.toDomain())
		},
	})
	ez.RegisterAction(e, ez.Action[idIn, deletedOut]{
		Method: http.MethodDelete, Path: "/feedbacks/:id", Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idIn) (deletedOut, error) {
			ok, err := h.svc.DeleteByID(c.Request.Context(), in.ID)
			return deletedOut{Deleted: ok}, err
		},
	})
}

func (h *FeedbackHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g, h.log)
	ez.RegisterAction(e, ez.Action[struct{}, countOut]{
		Method: http.MethodDelete, Path: "/feedbacks",
		Handler: func(c *gin.Context, _ *struct{}) (countOut, error) {
			n, err := h.svc.DeleteAll(c.Request.Context())
			return countOut{Deleted: n}, err
		},
	})
}
