package domain

import (
	"context"
	"time"
)

// Host is the host role of a user. It references the user by id and carries
// a copy of the user's fields when loaded.
type Host struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64     `gorm:"uniqueIndex;not null" json:"userId"`
	RegisteredAt time.Time `gorm:"not null;<-:create" json:"registeredAt"`
	User         *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (Host) TableName() string { return "hosts" }

// HostRanking is a row of a reservation-count ranking.
type HostRanking struct {
	HostID       int64  `json:"hostId"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	Reservations int64  `json:"reservations"`
}

type HostRepository interface {
	// Create fails with DuplicateHost when the store already holds a host for h.UserID.
	Create(ctx context.Context, h *Host) error
	FindAll(ctx context.Context) ([]Host, error)
	FindByID(ctx context.Context, id int64) (*Host, error)
	FindByUserID(ctx context.Context, userID int64) (*Host, error)
	Update(ctx context.Context, h *Host) (bool, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
	// RankByReservations counts reservations on each host's listings that start
	// in p. Hosts with no such reservation are omitted. Order is count
	// descending, then host id ascending.
	RankByReservations(ctx context.Context, p Period) ([]HostRanking, error)
}
