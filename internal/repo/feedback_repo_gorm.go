package repo

import (
	"context"

	"gorm.io/gorm"

	"booking-platform/internal/domain"
)

type FeedbackRepo struct{ db *gorm.DB }

func NewFeedbackRepo(db *gorm.DB) *FeedbackRepo { return &FeedbackRepo{db: db} }

func (r *FeedbackRepo) Create(ctx context.Context, f *domain.Feedback) error {
	return wrap("create feedback", r.db.WithContext(ctx).Create(f).Error)
}

func (r *FeedbackRepo) FindAll(ctx context.Context) ([]domain.Feedback, error) {
	return find[domain.Feedback]("find feedbacks", r.db.WithContext(ctx).Order("id"))
}

func (r *FeedbackRepo) FindByID(ctx context.Context, id int64) (*domain.Feedback, error) {
	return first[domain.Feedback]("find feedback", r.db.WithContext(ctx), "id = ?", id)
}

func (r *FeedbackRepo) FindByAccommodation(ctx context.Context, accommodationID int64) ([]domain.Feedback, error) {
	return find[domain.Feedback]("find feedbacks by accommodation",
		r.db.WithContext(ctx).Where("accommodation_id = ?", accommodationID).Order("id"))
}

func (r *FeedbackRepo) FindByUser(ctx context.Context, userID int64) ([]domain.Feedback, error) {
	return find[domain.Feedback]("find feedbacks by user",
		r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id"))
}

func (r *FeedbackRepo) FindByScore(ctx context.Context, score int) ([]domain.Feedback, error) {
	return find[domain.Feedback]("find feedbacks by score",
		r.db.WithContext(ctx).Where("score = ?", score).Order("id"))
}

func (r *FeedbackRepo) Update(ctx context.Context, f *domain.Feedback) (bool, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&domain.Feedback{}).Where("id = ?", f.ID).
		Select("title", "body", "score", "reservation_id", "user_id", "accommodation_id").
		Updates(f)
	return matched[domain.Feedback]("update feedback", db, res, f.ID)
}

func (r *FeedbackRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	return deleteByID[domain.Feedback]("delete feedback", r.db.WithContext(ctx), id)
}

func (r *FeedbackRepo) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll[domain.Feedback]("delete feedbacks", r.db.WithContext(ctx))
}
