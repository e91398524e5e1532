package domain

import (
	"context"
	"time"
)

const (
	MinScore = 1
	MaxScore = 5
)

// Feedback references its reservation, user and accommodation by id only.
type Feedback struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string    `gorm:"size:128" json:"title"`
	Body            string    `gorm:"type:text" json:"body"`
	Score           int       `gorm:"not null;index" json:"score"`
	ReservationID   int64     `gorm:"index" json:"reservationId"`
	UserID          int64     `gorm:"index" json:"userId"`
	AccommodationID int64     `gorm:"index" json:"accommodationId"`
	PublishedAt     time.Time `gorm:"<-:create" json:"publishedAt"`
}

func (Feedback) TableName() string { return "feedbacks" }

func ValidScore(s int) bool { return s >= MinScore && s <= MaxScore }

type FeedbackRepository interface {
	Create(ctx context.Context, f *Feedback) error
	FindAll(ctx context.Context) ([]Feedback, error)
	FindByID(ctx context.Context, id int64) (*Feedback, error)
	FindByAccommodation(ctx context.Context, accommodationID int64) ([]Feedback, error)
	FindByUser(ctx context.Context, userID int64) ([]Feedback, error)
	FindByScore(ctx context.Context, score int) ([]Feedback, error)
	Update(ctx context.Context, f *Feedback) (bool, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
}
