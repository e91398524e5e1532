package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"booking-platform/internal/core/cache"
	"booking-platform/internal/domain"
)

// StatsService groups the ranking reads and owns their cache entries.
type StatsService struct {
	base
	svc *Services
}

type Snapshot struct {
	WindowDays      int                  `json:"windowDays"`
	TopHosts        []domain.HostRanking `json:"topHosts"`
	SuperHosts      []domain.HostRanking `json:"superHosts"`
	MostPopular     *domain.Popularity   `json:"mostPopular"`
	TopTravelers    []domain.Traveler    `json:"topTravelers"`
	AverageBedCount float64              `json:"averageBedCount"`
}

func (s *StatsService) Snapshot(ctx context.Context) (*Snapshot, error) {
	var (
		out = &Snapshot{WindowDays: s.cfg.PopularWindowDays}
		err error
	)
	if out.TopHosts, err = s.svc.Hosts.TopHostsLastMonth(ctx); err != nil {
		return nil, err
	}
	if out.SuperHosts, err = s.svc.Hosts.SuperHosts(ctx); err != nil {
		return nil, err
	}
	if out.TopTravelers, err = s.svc.Users.TopTravelersLastMonth(ctx); err != nil {
		return nil, err
	}
	if out.AverageBedCount, err = s.svc.Accommodations.AverageBedCount(ctx); err != nil {
		return nil, err
	}
	out.MostPopular, err = s.svc.Accommodations.FindMostPopularLastMonth(ctx)
	if err != nil && !domain.IsKind(err, domain.KindAccommodationNotFound) {
		return nil, err
	}
	return out, nil
}

// Warm recomputes every cached ranking and overwrites its entry.
func (s *StatsService) Warm(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	today := s.today()
	put := func(key string, v any, err error) error {
		if err != nil {
			return fmt.Errorf("warm %s: %w", key, err)
		}
		return cache.PutJSON(s.cache, ctx, statsKey(key, today), s.ttl, v)
	}
	h := s.svc.Hosts
	top, err := h.loadTopHosts(ctx)
	if err := put("top-hosts", top, err); err != nil {
		return err
	}
	super, err := h.loadSuperHosts(ctx)
	if err := put("super-hosts", super, err); err != nil {
		return err
	}
	travelers, err := s.svc.Users.loadTopTravelers(ctx)
	if err := put("top-travelers", travelers, err); err != nil {
		return err
	}
	popular, err := s.svc.Accommodations.loadMostPopular(ctx)
	if err := put("most-popular", popular, err); err != nil {
		return err
	}
	s.log.Debug("stats cache warmed", zap.String("day", today.Format(domain.DayLayout)))
	return nil
}

// Purge drops every cached ranking.
func (s *StatsService) Purge(ctx context.Context) (int64, error) {
	n, err := s.cache.Purge(ctx, "stats:")
	if err != nil {
		return n, err
	}
	s.log.Info("stats cache purged", zap.Int64("keys", n))
	return n, nil
}
