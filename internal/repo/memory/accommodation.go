package memory

import (
	"context"
	"time"

	"booking-platform/internal/domain"
)

type accommodationRepo struct {
	st *state
	j  *journal
}

func normalize(a *domain.Accommodation) {
	a.AvailabilityStart = domain.Day(a.AvailabilityStart)
	a.AvailabilityEnd = domain.Day(a.AvailabilityEnd)
}

func (r accommodationRepo) Create(_ context.Context, a *domain.Accommodation) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	normalize(a)
	r.st.accs.insert(a, r.j)
	return nil
}

func (r accommodationRepo) list(keep func(*domain.Accommodation) bool) []domain.Accommodation {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return r.st.accs.filter(keep)
}

func (r accommodationRepo) FindAll(context.Context) ([]domain.Accommodation, error) {
	return r.list(nil), nil
}

func (r accommodationRepo) FindByID(_ context.Context, id int64) (*domain.Accommodation, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	if a, ok := r.st.accs.get(id); ok {
		return &a, nil
	}
	return nil, nil
}

// FindByIDForUpdate needs no lock of its own: Store.Tx already serializes.
func (r accommodationRepo) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Accommodation, error) {
	return r.FindByID(ctx, id)
}

func (r accommodationRepo) FindByName(_ context.Context, name string) ([]domain.Accommodation, error) {
	return r.list(func(a *domain.Accommodation) bool { return a.Name == name }), nil
}

func (r accommodationRepo) FindByRoomCount(_ context.Context, n int) ([]domain.Accommodation, error) {
	return r.list(func(a *domain.Accommodation) bool { return a.RoomCount == n }), nil
}

func (r accommodationRepo) FindOverlapping(_ context.Context, start, end time.Time) ([]domain.Accommodation, error) {
	return r.list(func(a *domain.Accommodation) bool {
		return domain.Overlaps(a.AvailabilityStart, a.AvailabilityEnd, domain.Day(start), domain.Day(end))
	}), nil
}

func (r accommodationRepo) FindByHost(_ context.Context, hostID int64) ([]domain.Accommodation, error) {
	return r.list(func(a *domain.Accommodation) bool { return a.HostID == hostID }), nil
}

func (r accommodationRepo) MostPopular(_ context.Context, p domain.Period) (*domain.Popularity, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	counts := map[int64]int64{}
	for _, res := range r.st.res.filter(func(x *domain.Reservation) bool { return p.Contains(x.StartDate) }) {
		counts[res.AccommodationID]++
	}
	var best *domain.Popularity
	for id, n := range counts {
		a, ok := r.st.accs.get(id)
		if !ok {
			continue
		}
		if best == nil || n > best.Reservations || (n == best.Reservations && id < best.Accommodation.ID) {
			best = &domain.Popularity{Accommodation: a, Reservations: n}
		}
	}
	return best, nil
}

func (r accommodationRepo) AverageBedCount(context.Context) (float64, error) {
	rows := r.list(nil)
	if len(rows) == 0 {
		return 0, nil
	}
	var sum int
	for _, a := range rows {
		sum += a.BedCount
	}
	return float64(sum) / float64(len(rows)), nil
}

func (r accommodationRepo) Update(_ context.Context, a *domain.Accommodation) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.accs.get(a.ID); !ok {
		return false, nil
	}
	normalize(a)
	r.st.accs.put(a.ID, *a, r.j)
	return true, nil
}

func (r accommodationRepo) delete(keep func(*domain.Accommodation) bool) int64 {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.st.accs.remove(keep, r.j)
}

func (r accommodationRepo) DeleteByID(_ context.Context, id int64) (bool, error) {
	return r.delete(func(a *domain.Accommodation) bool { return a.ID == id }) > 0, nil
}

func (r accommodationRepo) DeleteByName(_ context.Context, name string) (int64, error) {
	return r.delete(func(a *domain.Accommodation) bool { return a.Name == name }), nil
}

func (r accommodationRepo) DeleteAll(context.Context) (int64, error) {
	return r.delete(func(*domain.Accommodation) bool { return true }), nil
}
