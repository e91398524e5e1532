package domain

import (
	"context"
	"time"
)

type Accommodation struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string    `gorm:"size:128;not null;index" json:"name"`
	Address           string    `gorm:"size:255" json:"address"`
	RoomCount         int       `gorm:"not null;index" json:"roomCount"`
	BedCount          int       `gorm:"not null" json:"bedCount"`
	PricePerNight     float64   `gorm:"type:numeric(10,2)" json:"pricePerNight"`
	AvailabilityStart time.Time `gorm:"type:date;not null" json:"availabilityStart"`
	AvailabilityEnd   time.Time `gorm:"type:date;not null" json:"availabilityEnd"`
	HostID            int64     `gorm:"not null;index" json:"hostId"`
}

func (Accommodation) TableName() string { return "accommodations" }

// Covers reports whether [start, end] lies inside the availability window.
func (a *Accommodation) Covers(start, end time.Time) bool {
	return !Day(start).Before(Day(a.AvailabilityStart)) && !Day(end).After(Day(a.AvailabilityEnd))
}

// Popularity pairs an accommodation with its reservation count in a window.
type Popularity struct {
	Accommodation Accommodation `json:"accommodation"`
	Reservations  int64         `json:"reservations"`
}

type AccommodationRepository interface {
	Create(ctx context.Context, a *Accommodation) error
	FindAll(ctx context.Context) ([]Accommodation, error)
	FindByID(ctx context.Context, id int64) (*Accommodation, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (*Accommodation, error)
	FindByName(ctx context.Context, name string) ([]Accommodation, error)
	FindByRoomCount(ctx context.Context, n int) ([]Accommodation, error)
	// FindOverlapping returns listings whose window shares a day with [start, end].
	FindOverlapping(ctx context.Context, start, end time.Time) ([]Accommodation, error)
	FindByHost(ctx context.Context, hostID int64) ([]Accommodation, error)
	// MostPopular returns the listing with the most reservations starting in p;
	// ties go to the lowest id. nil when no reservation qualifies.
	MostPopular(ctx context.Context, p Period) (*Popularity, error)
	AverageBedCount(ctx context.Context) (float64, error)
	Update(ctx context.Context, a *Accommodation) (bool, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	DeleteByName(ctx context.Context, name string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
