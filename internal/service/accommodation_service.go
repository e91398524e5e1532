package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"booking-platform/internal/domain"
)

type AccommodationService struct {
	base
}

func (s *AccommodationService) validateWindow(a *domain.Accommodation) error {
	if a.AvailabilityStart.IsZero() || a.AvailabilityEnd.IsZero() {
		return domain.InvalidArgument("availabilityStart and availabilityEnd are required")
	}
	a.AvailabilityStart = domain.Day(a.AvailabilityStart)
	a.AvailabilityEnd = domain.Day(a.AvailabilityEnd)
	if a.AvailabilityEnd.Before(a.AvailabilityStart) {
		return domain.NewError(domain.KindInvalidAvailabilityRange, "availabilityEnd precedes availabilityStart").
			With("availabilityStart", a.AvailabilityStart.Format(domain.DayLayout)).
			With("availabilityEnd", a.AvailabilityEnd.Format(domain.DayLayout))
	}
	if a.AvailabilityStart.Before(s.today()) {
		s.log.Warn("availability window starts in the past",
			zap.String("name", a.Name),
			zap.String("availabilityStart", a.AvailabilityStart.Format(domain.DayLayout)))
	}
	return nil
}

func (s *AccommodationService) requireHost(ctx context.Context, hostID int64) error {
	if hostID <= 0 {
		return domain.HostNotFound(hostID)
	}
	h, err := s.store.Hosts().FindByID(ctx, hostID)
	if err != nil {
		return err
	}
	if h == nil {
		return domain.HostNotFound(hostID)
	}
	return nil
}

// Create lists a new accommodation. Room and bed counts are taken as given.
func (s *AccommodationService) Create(ctx context.Context, a *domain.Accommodation) (*domain.Accommodation, error) {
	if a == nil {
		return nil, domain.InvalidArgument("accommodation is required")
	}
	if err := s.validateWindow(a); err != nil {
		return nil, err
	}
	if err := s.requireHost(ctx, a.HostID); err != nil {
		return nil, err
	}
	a.ID = 0
	if err := s.store.Accommodations().Create(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info("accommodation listed", zap.Int64("accommodationId", a.ID), zap.Int64("hostId", a.HostID))
	return a, nil
}

// FindAll reports AccommodationNotFound when the catalog is empty.
func (s *AccommodationService) FindAll(ctx context.Context) ([]domain.Accommodation, error) {
	rows, err := s.store.Accommodations().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.NewError(domain.KindAccommodationNotFound, "no accommodations listed")
	}
	return rows, nil
}

func (s *AccommodationService) FindByID(ctx context.Context, id int64) (*domain.Accommodation, error) {
	if err := positive("id", id); err != nil {
		return nil, err
	}
	a, err := s.store.Accommodations().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.AccommodationNotFound(id)
	}
	return a, nil
}

func (s *AccommodationService) FindByName(ctx context.Context, name string) ([]domain.Accommodation, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewError(domain.KindInvalidQuery, "name is required")
	}
	return s.store.Accommodations().FindByName(ctx, name)
}

func (s *AccommodationService) FindByRoomCount(ctx context.Context, n int) ([]domain.Accommodation, error) {
	if n <= 0 {
		return nil, domain.NewError(domain.KindInvalidQuery, "room count must be positive").With("roomCount", n)
	}
	return s.store.Accommodations().FindByRoomCount(ctx, n)
}

// FindByAvailabilityRange returns listings whose window shares at least one
// day with [start, end].
func (s *AccommodationService) FindByAvailabilityRange(ctx context.Context, start, end time.Time) ([]domain.Accommodation, error) {
	if start.IsZero() || end.IsZero() {
		return nil, domain.InvalidArgument("start and end are required")
	}
	start, end = domain.Day(start), domain.Day(end)
	if end.Before(start) {
		return nil, domain.NewError(domain.KindInvalidRange, "end precedes start").
			With("startDate", start.Format(domain.DayLayout)).
			With("endDate", end.Format(domain.DayLayout))
	}
	return s.store.Accommodations().FindOverlapping(ctx, start, end)
}

func (s *AccommodationService) FindByHost(ctx context.Context, hostID int64) ([]domain.Accommodation, error) {
	if err := positive("hostId", hostID); err != nil {
		return nil, err
	}
	return s.store.Accommodations().FindByHost(ctx, hostID)
}

// FindMostPopularLastMonth picks the listing with the most reservations
// starting inside the trailing window. Ties go to the lowest id.
func (s *AccommodationService) FindMostPopularLastMonth(ctx context.Context) (*domain.Popularity, error) {
	p, err := cached(ctx, s.base, "most-popular", s.loadMostPopular)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewError(domain.KindAccommodationNotFound, "no reservations in the window").
			With("windowDays", s.cfg.PopularWindowDays)
	}
	return p, nil
}

func (s *AccommodationService) loadMostPopular(ctx context.Context) (*domain.Popularity, error) {
	return s.store.Accommodations().MostPopular(ctx, s.window())
}

func (s *AccommodationService) AverageBedCount(ctx context.Context) (float64, error) {
	return s.store.Accommodations().AverageBedCount(ctx)
}

// Update replaces every field of the listing with id a.ID.
func (s *AccommodationService) Update(ctx context.Context, a *domain.Accommodation) (*domain.Accommodation, error) {
	if a == nil {
		return nil, domain.InvalidArgument("accommodation is required")
	}
	if err := positive("id", a.ID); err != nil {
		return nil, err
	}
	if err := s.validateWindow(a); err != nil {
		return nil, err
	}
	if err := s.requireHost(ctx, a.HostID); err != nil {
		return nil, err
	}
	ok, err := s.store.Accommodations().Update(ctx, a)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.AccommodationNotFound(a.ID)
	}
	return a, nil
}

func (s *AccommodationService) DeleteByID(ctx context.Context, id int64) (bool, error) {
	if err := positive("id", id); err != nil {
		return false, err
	}
	return s.store.Accommodations().DeleteByID(ctx, id)
}

func (s *AccommodationService) DeleteByName(ctx context.Context, name string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, domain.InvalidArgument("name is required")
	}
	return s.store.Accommodations().DeleteByName(ctx, name)
}

func (s *AccommodationService) DeleteAll(ctx context.Context) (int64, error) {
	return s.store.Accommodations().DeleteAll(ctx)
}
