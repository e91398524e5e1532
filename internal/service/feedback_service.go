package service

import (
	"context"

	"go.uber.org/zap"

	"booking-platform/internal/domain"
)

// FeedbackService stores reviews. Reservation, user and accommodation ids are
// recorded as given and never resolved.
type FeedbackService struct {
	base
}

func checkScore(score int) error {
	if !domain.ValidScore(score) {
		return domain.InvalidArgument("score must be between %d and %d, got %d", domain.MinScore, domain.MaxScore, score).
			With("score", score)
	}
	return nil
}

func (s *FeedbackService) Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	if f == nil {
		return nil, domain.InvalidArgument("feedback is required")
	}
	if err := checkScore(f.Score); err != nil {
		return nil, err
	}
	f.ID = 0
	f.PublishedAt = s.now()
	if err := s.store.Feedbacks().Create(ctx, f); err != nil {
		return nil, err
	}
	s.log.Info("feedback published", zap.Int64("feedbackId", f.ID), zap.Int("score", f.Score))
	return f, nil
}

func (s *FeedbackService) FindAll(ctx context.Context) ([]domain.Feedback, error) {
	return s.store.Feedbacks().FindAll(ctx)
}

func (s *FeedbackService) FindByID(ctx context.Context, id int64) (*domain.Feedback, error) {
	if err := positive("id", id); err != nil {
		return nil, err
	}
	f, err := s.store.Feedbacks().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.FeedbackNotFound(id)
	}
	return f, nil
}

func (s *FeedbackService) FindByAccommodation(ctx context.Context, accommodationID int64) ([]domain.Feedback, error) {
	if err := positive("accommodationId", accommodationID); err != nil {
		return nil, err
	}
	return s.store.Feedbacks().FindByAccommodation(ctx, accommodationID)
}

func (s *FeedbackService) FindByUser(ctx context.Context, userID int64) ([]domain.Feedback, error) {
	if err := positive("userId", userID); err != nil {
		return nil, err
	}
	return s.store.Feedbacks().FindByUser(ctx, userID)
}

func (s *FeedbackService) FindByScore(ctx context.Context, score int) ([]domain.Feedback, error) {
	if !domain.ValidScore(score) {
		return nil, domain.NewError(domain.KindInvalidQuery, "score out of range").With("score", score)
	}
	return s.store.Feedbacks().FindByScore(ctx, score)
}

func (s *FeedbackService) Update(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	if f == nil {
		return nil, domain.InvalidArgument("feedback is required")
	}
	if err := positive("id", f.ID); err != nil {
		return nil, err
	}
	if err := checkScore(f.Score); err != nil {
		return nil, err
	}
	ok, err := s.store.Feedbacks().Update(ctx, f)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.FeedbackNotFound(f.ID)
	}
	return s.FindByID(ctx, f.ID)
}

func (s *FeedbackService) DeleteByID(ctx context.Context, id int64) (bool, error) {
	if err := positive("id", id); err != nil {
		return false, err
	}
	return s.store.Feedbacks().DeleteByID(ctx, id)
}

func (s *FeedbackService) DeleteAll(ctx context.Context) (int64, error) {
	return s.store.Feedbacks().DeleteAll(ctx)
}
