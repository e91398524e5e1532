package domain

import (
	"context"
	"time"
)

type Reservation struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	StartDate       time.Time `gorm:"type:date;not null;index" json:"startDate"`
	EndDate         time.Time `gorm:"type:date;not null" json:"endDate"`
	UserID          int64     `gorm:"not null;index" json:"userId"`
	AccommodationID int64     `gorm:"not null;index" json:"accommodationId"`
	CreatedAt       time.Time `gorm:"not null" json:"createdAt"`
}

func (Reservation) TableName() string { return "reservations" }

// Nights is the number of nights between start and end.
func (r *Reservation) Nights() int64 {
	return int64(Day(r.EndDate).Sub(Day(r.StartDate)).Hours() / 24)
}

type ReservationRepository interface {
	Create(ctx context.Context, r *Reservation) error
	FindAll(ctx context.Context) ([]Reservation, error)
	FindByID(ctx context.Context, id int64) (*Reservation, error)
	FindByUser(ctx context.Context, userID int64) ([]Reservation, error)
	// FindLatestByUser orders by created_at then id, newest first.
	FindLatestByUser(ctx context.Context, userID int64) (*Reservation, error)
	// FindOverlapping returns reservations on accommodationID sharing a night with [start, end).
	FindOverlapping(ctx context.Context, accommodationID int64, start, end time.Time) ([]Reservation, error)
	Update(ctx context.Context, r *Reservation) (bool, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
}
