package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"booking-platform/internal/domain"
)

type ReservationService struct {
	base
}

// Create admits a reservation for userID on accommodationID over [start, end).
func (s *ReservationService) Create(ctx context.Context, userID, accommodationID int64, start, end time.Time) (*domain.Reservation, error) {
	return s.Admit(ctx, &domain.Reservation{
		UserID:          userID,
		AccommodationID: accommodationID,
		StartDate:       start,
		EndDate:         end,
	})
}

// Admit runs the admission checks in order and persists r on success:
//
//  1. end after start (InvalidRange)
//  2. start not before today (PastDate)
//  3. accommodation exists (AccommodationNotFound)
//  4. range inside the availability window (OutsideAvailabilityWindow)
//  5. no overlap with another reservation, when booking.reject_overlaps is set
//
// Steps 3 to 5 and the insert share one transaction holding a row lock on
// the accommodation. A zero CreatedAt is stamped with the current time.
func (s *ReservationService) Admit(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	err := s.admit(ctx, r)
	observeAdmission(err)
	if err != nil {
		s.log.Debug("reservation rejected",
			zap.Int64("userId", r.UserID),
			zap.Int64("accommodationId", r.AccommodationID),
			zap.Error(err))
		return nil, err
	}
	s.log.Info("reservation admitted",
		zap.Int64("reservationId", r.ID),
		zap.Int64("userId", r.UserID),
		zap.Int64("accommodationId", r.AccommodationID),
		zap.String("startDate", r.StartDate.Format(domain.DayLayout)),
		zap.String("endDate", r.EndDate.Format(domain.DayLayout)))
	return r, nil
}

func (s *ReservationService) admit(ctx context.Context, r *domain.Reservation) error {
	if r == nil {
		return domain.InvalidArgument("reservation is required")
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return domain.InvalidArgument("startDate and endDate are required")
	}
	if err := positive("userId", r.UserID); err != nil {
		return err
	}
	r.StartDate, r.EndDate = domain.Day(r.StartDate), domain.Day(r.EndDate)

	if !r.EndDate.After(r.StartDate) {
		return domain.NewError(domain.KindInvalidRange, "endDate must be after startDate").
			With("startDate", r.StartDate.Format(domain.DayLayout)).
			With("endDate", r.EndDate.Format(domain.DayLayout))
	}
	if today := s.today(); r.StartDate.Before(today) {
		return domain.NewError(domain.KindPastDate, "startDate is in the past").
			With("startDate", r.StartDate.Format(domain.DayLayout)).
			With("today", today.Format(domain.DayLayout))
	}

	return s.store.Tx(ctx, func(tx domain.Store) error {
		a, err := tx.Accommodations().FindByIDForUpdate(ctx, r.AccommodationID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.AccommodationNotFound(r.AccommodationID)
		}
		if !a.Covers(r.StartDate, r.EndDate) {
			return domain.NewError(domain.KindOutsideAvailabilityWindow, "requested range is outside the availability window").
				With("accommodationId", a.ID).
				With("availabilityStart", domain.Day(a.AvailabilityStart).Format(domain.DayLayout)).
				With("availabilityEnd", domain.Day(a.AvailabilityEnd).Format(domain.DayLayout))
		}
		if err := s.checkOverlap(ctx, tx, r); err != nil {
			return err
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = s.now()
		}
		r.ID = 0
		return tx.Reservations().Create(ctx, r)
	})
}

func (s *ReservationService) checkOverlap(ctx context.Context, tx domain.Store, r *domain.Reservation) error {
	clash, err := tx.Reservations().FindOverlapping(ctx, r.AccommodationID, r.StartDate, r.EndDate)
	if err != nil || len(clash) == 0 {
		return err
	}
	ids := make([]int64, 0, len(clash))
	for _, c := range clash {
		ids = append(ids, c.ID)
	}
	if s.cfg.RejectOverlaps {
		return domain.NewError(domain.KindOverlappingReservation, "range overlaps an existing reservation").
			With("accommodationId", r.AccommodationID).
			With("reservationIds", ids)
	}
	doubleBookings.Inc()
	s.log.Warn("double booking admitted",
		zap.Int64("accommodationId", r.AccommodationID),
		zap.Int64s("overlaps", ids))
	return nil
}

// GetAll reports ReservationNotFound when the ledger is empty.
func (s *ReservationService) GetAll(ctx context.Context) ([]domain.Reservation, error) {
	rows, err := s.store.Reservations().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.NewError(domain.KindReservationNotFound, "no reservations recorded")
	}
	return rows, nil
}

func (s *ReservationService) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if err := positive("id", id); err != nil {
		return nil, err
	}
	r, err := s.store.Reservations().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ReservationNotFound(id)
	}
	return r, nil
}

func (s *ReservationService) GetByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	if err := positive("userId", userID); err != nil {
		return nil, err
	}
	return s.store.Reservations().FindByUser(ctx, userID)
}

func (s *ReservationService) GetLatestByUser(ctx context.Context, userID int64) (*domain.Reservation, error) {
	if err := positive("userId", userID); err != nil {
		return nil, err
	}
	r, err := s.store.Reservations().FindLatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.NewError(domain.KindReservationNotFound, "user has no reservations").With("userId", userID)
	}
	return r, nil
}

// Update replaces the user, accommodation and dates of reservation r.ID.
// It does not re-run admission.
func (s *ReservationService) Update(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	if r == nil {
		return nil, domain.InvalidArgument("reservation is required")
	}
	if err := positive("id", r.ID); err != nil {
		return nil, err
	}
	r.StartDate, r.EndDate = domain.Day(r.StartDate), domain.Day(r.EndDate)
	if !r.EndDate.After(r.StartDate) {
		return nil, domain.NewError(domain.KindInvalidRange, "endDate must be after startDate").
			With("startDate", r.StartDate.Format(domain.DayLayout)).
			With("endDate", r.EndDate.Format(domain.DayLayout))
	}
	ok, err := s.store.Reservations().Update(ctx, r)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ReservationNotFound(r.ID)
	}
	return s.GetByID(ctx, r.ID)
}

func (s *ReservationService) DeleteByID(ctx context.Context, id int64) (bool, error) {
	if err := positive("id", id); err != nil {
		return false, err
	}
	return s.store.Reservations().DeleteByID(ctx, id)
}

func (s *ReservationService) DeleteAll(ctx context.Context) (int64, error) {
	return s.store.Reservations().DeleteAll(ctx)
}
