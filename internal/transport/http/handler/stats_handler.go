package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"booking-platform/internal/domain"
	"booking-platform/internal/service"
	"booking-platform/internal/transport/http/ez"
)

// StatsHandler serves the rankings. Its admin half manages the cache.
type StatsHandler struct {
	svc *service.Services
	log *zap.Logger
}

func NewStatsHandler(svc *service.Services, l *zap.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: l}
}

func (StatsHandler) Priority() int { return 60 }

type snapshotOut struct {
	WindowDays      int                  `json:"windowDays"`
	TopHosts        []domain.HostRanking `json:"topHosts"`
	SuperHosts      []domain.HostRanking `json:"superHosts"`
	MostPopular     *popularityDTO       `json:"mostPopular"`
	TopTravelers    []domain.Traveler    `json:"topTravelers"`
	AverageBedCount float64              `json:"averageBedCount"`
}

type purgeOut struct {
	Purged int64 `json:"purged"`
}

type warmOut struct {
	Warmed bool `json:"warmed"`
}

func (h *StatsHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	ez.RegisterAction(e, ez.Action[struct{}, snapshotOut]{
		Method: http.MethodGet, Path: "/stats",
		Handler: func(c *gin.Context, _ *struct{}) (snapshotOut, error) {
			s, err := h.svc.Stats.Snapshot(c.Request.Context())
			if err != nil {
				return snapshotOut{}, err
			}
			return snapshotOut{
				WindowDays: s.WindowDays, TopHosts: s.TopHosts, SuperHosts: s.SuperHosts,
				MostPopular: toPopularityDTO(s.MostPopular), TopTravelers: s.TopTravelers,
				AverageBedCount: s.AverageBedCount,
			}, nil
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, []domain.HostRanking]{
		Method: http.MethodGet, Path: "/stats/top-hosts",
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.HostRanking, error) {
			return h.svc.Hosts.TopHostsLastMonth(c.Request.Context())
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, []domain.HostRanking]{
		Method: http.MethodGet, Path: "/stats/super-hosts",
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.HostRanking, error) {
			return h.svc.Hosts.SuperHosts(c.Request.Context())
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, *popularityDTO]{
		Method: http.MethodGet, Path: "/stats/most-popular",
		Handler: func(c *gin.Context, _ *struct{}) (*popularityDTO, error) {
			p, err := h.svc.Accommodations.FindMostPopularLastMonth(c.Request.Context())
			if err != nil {
				return nil, err
			}
			return toPopularityDTO(p), nil
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, []domain.Traveler]{
		Method: http.MethodGet, Path: "/stats/top-travelers",
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Traveler, error) {
			return h.svc.Users.TopTravelersLastMonth(c.Request.Context())
		},
	})
}

func (h *StatsHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	ez.RegisterAction(e, ez.Action[struct{}, warmOut]{
		Method: http.MethodPost, Path: "/cache/warm",
		Handler: func(c *gin.Context, _ *struct{}) (warmOut, error) {
			if err := h.svc.Stats.Warm(c.Request.Context()); err != nil {
				return warmOut{}, err
			}
			return warmOut{Warmed: true}, nil
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, purgeOut]{
		Method: http.MethodPost, Path: "/cache/purge",
		Handler: func(c *gin.Context, _ *struct{}) (purgeOut, error) {
			n, err := h.svc.Stats.Purge(c.Request.Context())
			return purgeOut{Purged: n}, err
		},
	})
}
