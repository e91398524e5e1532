package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"booking-platform/internal/domain"
)

type HostService struct {
	base
	users *UserService
}

// Create promotes userID to host. A second promotion of the same user fails
// with DuplicateHost, whether caught by the lookup or by the unique index.
func (s *HostService) Create(ctx context.Context, userID int64) (*domain.Host, error) {
	if err := positive("userId", userID); err != nil {
		return nil, err
	}
	u, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.UserNotFound("userId", userID)
	}
	existing, err := s.store.Hosts().FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.DuplicateHost(userID)
	}
	h := &domain.Host{UserID: userID, RegisteredAt: s.now()}
	if err := s.store.Hosts().Create(ctx, h); err != nil {
		if domain.IsKind(err, domain.KindDuplicateHost) {
			s.log.Warn("concurrent host promotion rejected", zap.Int64("userId", userID))
		}
		return nil, err
	}
	h.User = u
	s.log.Info("host registered", zap.Int64("hostId", h.ID), zap.Int64("userId", userID))
	return h, nil
}

// Update writes the embedded user's fields through the user directory, then
// the host row. A failure in the second step leaves the first committed.
func (s *HostService) Update(ctx context.Context, h *domain.Host) (*domain.Host, error) {
	if h == nil {
		return nil, domain.InvalidArgument("host is required")
	}
	if err := positive("id", h.ID); err != nil {
		return nil, err
	}
	if h.UserID == 0 && h.User != nil {
		h.UserID = h.User.ID
	}
	if err := positive("userId", h.UserID); err != nil {
		return nil, err
	}
	if h.User != nil {
		u := *h.User
		u.ID = h.UserID
		if _, err := s.users.Update(ctx, &u); err != nil {
			return nil, err
		}
	} else if _, err := s.users.FindByID(ctx, h.UserID); err != nil {
		return nil, err
	}
	ok, err := s.store.Hosts().Update(ctx, h)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.HostNotFound(h.ID)
	}
	return s.FindByID(ctx, h.ID)
}

func (s *HostService) FindAll(ctx context.Context) ([]domain.Host, error) {
	return s.store.Hosts().FindAll(ctx)
}

func (s *HostService) FindByID(ctx context.Context, id int64) (*domain.Host, error) {
	if err := positive("id", id); err != nil {
		return nil, err
	}
	h, err := s.store.Hosts().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.HostNotFound(id)
	}
	return h, nil
}

func (s *HostService) FindByUserID(ctx context.Context, userID int64) (*domain.Host, error) {
	if err := positive("userId", userID); err != nil {
		return nil, err
	}
	h, err := s.store.Hosts().FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.NewError(domain.KindHostNotFound, fmt.Sprintf("user %d is not a host", userID)).With("userId", userID)
	}
	return h, nil
}

func (s *HostService) DeleteByID(ctx context.Context, id int64) error {
	if err := positive("id", id); err != nil {
		return err
	}
	ok, err := s.store.Hosts().DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.HostNotFound(id)
	}
	return nil
}

func (s *HostService) DeleteAll(ctx context.Context) (int64, error) {
	return s.store.Hosts().DeleteAll(ctx)
}

// TopHostsLastMonth ranks hosts by reservations on their listings that start
// inside the trailing window.
func (s *HostService) TopHostsLastMonth(ctx context.Context) ([]domain.HostRanking, error) {
	out, err := cached(ctx, s.base, "top-hosts", s.loadTopHosts)
	if err != nil || out == nil {
		return nil, err
	}
	return *out, nil
}

func (s *HostService) loadTopHosts(ctx context.Context) (*[]domain.HostRanking, error) {
	rows, err := s.store.Hosts().RankByReservations(ctx, s.window())
	if err != nil {
		return nil, err
	}
	return &rows, nil
}

// SuperHosts lists hosts whose all-time reservation count reaches
// booking.super_host_min_reservations.
func (s *HostService) SuperHosts(ctx context.Context) ([]domain.HostRanking, error) {
	out, err := cached(ctx, s.base, "super-hosts", s.loadSuperHosts)
	if err != nil || out == nil {
		return nil, err
	}
	return *out, nil
}

func (s *HostService) loadSuperHosts(ctx context.Context) (*[]domain.HostRanking, error) {
	rows, err := s.store.Hosts().RankByReservations(ctx, domain.Period{})
	if err != nil {
		return nil, err
	}
	threshold := int64(s.cfg.SuperHostMinReservations)
	out := make([]domain.HostRanking, 0, len(rows))
	for _, r := range rows {
		if r.Reservations < threshold {
			break
		}
		out = append(out, r)
	}
	return &out, nil
}
