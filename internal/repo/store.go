package repo

import (
	"context"

	"gorm.io/gorm"

	"booking-platform/internal/domain"
)

var _ domain.Store = (*Store)(nil)

// Store is the gorm-backed domain.Store.
type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Users() domain.UserRepository                   { return &UserRepo{db: s.db} }
func (s *Store) Hosts() domain.HostRepository                   { return &HostRepo{db: s.db} }
func (s *Store) Accommodations() domain.AccommodationRepository { return &AccommodationRepo{db: s.db} }
func (s *Store) Reservations() domain.ReservationRepository     { return &ReservationRepo{db: s.db} }
func (s *Store) Feedbacks() domain.FeedbackRepository           { return &FeedbackRepo{db: s.db} }

func (s *Store) Tx(ctx context.Context, fn func(tx domain.Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
	return wrap("transaction", err)
}

// DB exposes the handle for migrations and health checks.
func (s *Store) DB() *gorm.DB { return s.db }
