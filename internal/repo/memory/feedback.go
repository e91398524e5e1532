package memory

import (
	"context"

	"booking-platform/internal/domain"
)

type feedbackRepo struct {
	st *state
	j  *journal
}

func (r feedbackRepo) Create(_ context.Context, f *domain.Feedback) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.fbs.insert(f, r.j)
	return nil
}

func (r feedbackRepo) list(keep func(*domain.Feedback) bool) []domain.Feedback {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return r.st.fbs.filter(keep)
}

func (r feedbackRepo) FindAll(context.Context) ([]domain.Feedback, error) {
	return r.list(nil), nil
}

func (r feedbackRepo) FindByID(_ context.Context, id int64) (*domain.Feedback, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	if f, ok := r.st.fbs.get(id); ok {
		return &f, nil
	}
	return nil, nil
}

func (r feedbackRepo) FindByAccommodation(_ context.Context, accommodationID int64) ([]domain.Feedback, error) {
	return r.list(func(f *domain.Feedback) bool { return f.AccommodationID == accommodationID }), nil
}

func (r feedbackRepo) FindByUser(_ context.Context, userID int64) ([]domain.Feedback, error) {
	return r.list(func(f *domain.Feedback) bool { return f.UserID == userID }), nil
}

func (r feedbackRepo) FindByScore(_ context.Context, score int) ([]domain.Feedback, error) {
	return r.list(func(f *domain.Feedback) bool { return f.Score == score }), nil
}

func (r feedbackRepo) Update(_ context.Context, f *domain.Feedback) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	cur, ok := r.st.fbs.get(f.ID)
	if !ok {
		return false, nil
	}
	f.PublishedAt = cur.PublishedAt
	r.st.fbs.put(f.ID, *f, r.j)
	return true, nil
}

func (r feedbackRepo) DeleteByID(_ context.Context, id int64) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.st.fbs.remove(func(f *domain.Feedback) bool { return f.ID == id }, r.j) > 0, nil
}

func (r feedbackRepo) DeleteAll(context.Context) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.st.fbs.remove(func(*domain.Feedback) bool { return true }, r.j), nil
}
