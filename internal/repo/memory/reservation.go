package memory

import (
	"context"
	"time"

	"booking-platform/internal/domain"
)

type reservationRepo struct {
	st *state
	j  *journal
}

func (r reservationRepo) Create(_ context.Context, res *domain.Reservation) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	res.StartDate, res.EndDate = domain.Day(res.StartDate), domain.Day(res.EndDate)
	r.st.res.insert(res, r.j)
	return nil
}

func (r reservationRepo) list(keep func(*domain.Reservation) bool) []domain.Reservation {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return r.st.res.filter(keep)
}

func (r reservationRepo) FindAll(context.Context) ([]domain.Reservation, error) {
	return r.list(nil), nil
}

func (r reservationRepo) FindByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	if res, ok := r.st.res.get(id); ok {
		return &res, nil
	}
	return nil, nil
}

func (r reservationRepo) FindByUser(_ context.Context, userID int64) ([]domain.Reservation, error) {
	return r.list(func(x *domain.Reservation) bool { return x.UserID == userID }), nil
}

func (r reservationRepo) FindLatestByUser(_ context.Context, userID int64) (*domain.Reservation, error) {
	var latest *domain.Reservation
	for _, res := range r.list(func(x *domain.Reservation) bool { return x.UserID == userID }) {
		if latest == nil || !res.CreatedAt.Before(latest.CreatedAt) {
			v := res
			latest = &v
		}
	}
	return latest, nil
}

func (r reservationRepo) FindOverlapping(_ context.Context, accommodationID int64, start, end time.Time) ([]domain.Reservation, error) {
	start, end = domain.Day(start), domain.Day(end)
	return r.list(func(x *domain.Reservation) bool {
		return x.AccommodationID == accommodationID && x.StartDate.Before(end) && x.EndDate.After(start)
	}), nil
}

func (r reservationRepo) Update(_ context.Context, res *domain.Reservation) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	cur, ok := r.st.res.get(res.ID)
	if !ok {
		return false, nil
	}
	cur.StartDate, cur.EndDate = domain.Day(res.StartDate), domain.Day(res.EndDate)
	cur.UserID, cur.AccommodationID = res.UserID, res.AccommodationID
	r.st.res.put(res.ID, cur, r.j)
	return true, nil
}

func (r reservationRepo) DeleteByID(_ context.Context, id int64) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.st.res.remove(func(x *domain.Reservation) bool { return x.ID == id }, r.j) > 0, nil
}

func (r reservationRepo) DeleteAll(context.Context) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.st.res.remove(func(*domain.Reservation) bool { return true }, r.j), nil
}
