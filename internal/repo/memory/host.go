package memory

import (
	"context"
	"errors"
	"sort"

	"booking-platform/internal/domain"
)

type hostRepo struct {
	st *state
	j  *journal
}

var errNoUser = errors.New("foreign key violation: hosts.user_id")

// withUser fills the User copy; callers hold the lock.
func (r hostRepo) withUser(h domain.Host) domain.Host {
	if u, ok := r.st.users.get(h.UserID); ok {
		h.User = &u
	}
	return h
}

func (r hostRepo) Create(_ context.Context, h *domain.Host) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if len(r.st.hosts.filter(func(x *domain.Host) bool { return x.UserID == h.UserID })) > 0 {
		return domain.DuplicateHost(h.UserID)
	}
	if _, ok := r.st.users.get(h.UserID); !ok {
		return domain.Storage("create host", errNoUser)
	}
	row := *h
	row.User = nil
	r.st.hosts.insert(&row, r.j)
	h.ID = row.ID
	return nil
}

func (r hostRepo) FindAll(context.Context) ([]domain.Host, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	rows := r.st.hosts.filter(nil)
	for i := range rows {
		rows[i] = r.withUser(rows[i])
	}
	return rows, nil
}

func (r hostRepo) FindByID(_ context.Context, id int64) (*domain.Host, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	if h, ok := r.st.hosts.get(id); ok {
		h = r.withUser(h)
		return &h, nil
	}
	return nil, nil
}

func (r hostRepo) FindByUserID(_ context.Context, userID int64) (*domain.Host, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	if rows := r.st.hosts.filter(func(h *domain.Host) bool { return h.UserID == userID }); len(rows) > 0 {
		h := r.withUser(rows[0])
		return &h, nil
	}
	return nil, nil
}

func (r hostRepo) Update(_ context.Context, h *domain.Host) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	cur, ok := r.st.hosts.get(h.ID)
	if !ok {
		return false, nil
	}
	if len(r.st.hosts.filter(func(x *domain.Host) bool { return x.UserID == h.UserID && x.ID != h.ID })) > 0 {
		return false, domain.DuplicateHost(h.UserID)
	}
	if _, ok := r.st.users.get(h.UserID); !ok {
		return false, domain.Storage("update host", errNoUser)
	}
	cur.UserID = h.UserID
	r.st.hosts.put(h.ID, cur, r.j)
	return true, nil
}

func (r hostRepo) DeleteByID(_ context.Context, id int64) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.st.hosts.remove(func(h *domain.Host) bool { return h.ID == id }, r.j) > 0, nil
}

func (r hostRepo) DeleteAll(context.Context) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.st.hosts.remove(func(*domain.Host) bool { return true }, r.j), nil
}

func (r hostRepo) RankByReservations(_ context.Context, p domain.Period) ([]domain.HostRanking, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	counts := map[int64]int64{}
	for _, res := range r.st.res.filter(func(x *domain.Reservation) bool { return p.Contains(x.StartDate) }) {
		a, ok := r.st.accs.get(res.AccommodationID)
		if !ok {
			continue
		}
		counts[a.HostID]++
	}
	out := make([]domain.HostRanking, 0, len(counts))
	for id, n := range counts {
		h, ok := r.st.hosts.get(id)
		if !ok {
			continue
		}
		u, ok := r.st.users.get(h.UserID)
		if !ok {
			continue
		}
		out = append(out, domain.HostRanking{HostID: id, Name: u.Name, Surname: u.Surname, Reservations: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Reservations != out[j].Reservations {
			return out[i].Reservations > out[j].Reservations
		}
		return out[i].HostID < out[j].HostID
	})
	return out, nil
}
