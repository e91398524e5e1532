package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"booking-platform/internal/domain"
)

type UserService struct {
	base
}

func validateUser(u *domain.User) error {
	if u == nil {
		return domain.InvalidArgument("user is required")
	}
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	if u.Name == "" {
		return domain.InvalidArgument("name is required")
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return domain.InvalidArgument("a valid email is required")
	}
	return nil
}

func (s *UserService) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if err := validateUser(u); err != nil {
		return nil, err
	}
	existing, err := s.store.Users().FindByEmail(ctx, u.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.DuplicateUser(u.Email)
	}
	u.ID = 0
	u.RegisteredAt = s.now()
	if err := s.store.Users().Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.Int64("userId", u.ID))
	return u, nil
}

func (s *UserService) FindAll(ctx context.Context) ([]domain.User, error) {
	return s.store.Users().FindAll(ctx)
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := positive("id", id); err != nil {
		return nil, err
	}
	u, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.UserNotFound("userId", id)
	}
	return u, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, domain.InvalidArgument("email is required")
	}
	u, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.UserNotFound("email", email)
	}
	return u, nil
}

func (s *UserService) FindByName(ctx context.Context, name string) (*domain.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.InvalidArgument("name is required")
	}
	u, err := s.store.Users().FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.UserNotFound("name", name)
	}
	return u, nil
}

// Update writes name, surname, email and address. RegisteredAt never changes.
func (s *UserService) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	if u == nil {
		return nil, domain.InvalidArgument("user is required")
	}
	if err := positive("id", u.ID); err != nil {
		return nil, err
	}
	if err := validateUser(u); err != nil {
		return nil, err
	}
	ok, err := s.store.Users().Update(ctx, u)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.UserNotFound("userId", u.ID)
	}
	return s.FindByID(ctx, u.ID)
}

func (s *UserService) DeleteByID(ctx context.Context, id int64) (bool, error) {
	if err := positive("id", id); err != nil {
		return false, err
	}
	return s.store.Users().DeleteByID(ctx, id)
}

func (s *UserService) DeleteByName(ctx context.Context, name string) error {
	ok, err := s.store.Users().DeleteByName(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return domain.UserNotFound("name", name)
	}
	return nil
}

func (s *UserService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.store.Users().DeleteAll(ctx)
	if err == nil {
		s.log.Warn("all users deleted", zap.Int64("count", n))
	}
	return n, err
}

// TopTravelersLastMonth ranks users by nights booked on reservations that
// start inside the trailing window.
func (s *UserService) TopTravelersLastMonth(ctx context.Context) ([]domain.Traveler, error) {
	out, err := cached(ctx, s.base, "top-travelers", s.loadTopTravelers)
	if err != nil || out == nil {
		return nil, err
	}
	return *out, nil
}

func (s *UserService) loadTopTravelers(ctx context.Context) (*[]domain.Traveler, error) {
	rows, err := s.store.Users().TopTravelers(ctx, s.window(), s.cfg.TopTravelers)
	if err != nil {
		return nil, err
	}
	return &rows, nil
}
