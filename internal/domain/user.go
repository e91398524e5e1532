package domain

import (
	"context"
	"time"
)

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"size:64;not null;index" json:"name"`
	Surname      string    `gorm:"size:64" json:"surname"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Address      string    `gorm:"size:255" json:"address"`
	RegisteredAt time.Time `gorm:"not null;<-:create" json:"registeredAt"`
}

func (User) TableName() string { return "users" }

// Traveler is a row of the nights-booked ranking.
type Traveler struct {
	UserID  int64  `json:"userId"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Nights  int64  `json:"nights"`
}

// UserRepository finders return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByName(ctx context.Context, name string) (*User, error)
	// Update writes the mutable fields and reports whether a row matched.
	Update(ctx context.Context, u *User) (bool, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	DeleteByName(ctx context.Context, name string) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
	// TopTravelers ranks users by nights booked on reservations starting in p.
	TopTravelers(ctx context.Context, p Period, limit int) ([]Traveler, error)
}
