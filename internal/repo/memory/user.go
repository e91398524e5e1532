package memory

import (
	"context"
	"sort"

	"booking-platform/internal/domain"
)

type userRepo struct {
	st *state
	j  *journal
}

func (r userRepo) Create(_ context.Context, u *domain.User) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if len(r.st.users.filter(func(x *domain.User) bool { return x.Email == u.Email })) > 0 {
		return domain.DuplicateUser(u.Email)
	}
	r.st.users.insert(u, r.j)
	return nil
}

func (r userRepo) FindAll(context.Context) ([]domain.User, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return r.st.users.filter(nil), nil
}

func (r userRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	if u, ok := r.st.users.get(id); ok {
		return &u, nil
	}
	return nil, nil
}

func (r userRepo) findFirst(keep func(*domain.User) bool) *domain.User {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	if rows := r.st.users.filter(keep); len(rows) > 0 {
		return &rows[0]
	}
	return nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.findFirst(func(u *domain.User) bool { return u.Email == email }), nil
}

func (r userRepo) FindByName(_ context.Context, name string) (*domain.User, error) {
	return r.findFirst(func(u *domain.User) bool { return u.Name == name }), nil
}

func (r userRepo) Update(_ context.Context, u *domain.User) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	cur, ok := r.st.users.get(u.ID)
	if !ok {
		return false, nil
	}
	if len(r.st.users.filter(func(x *domain.User) bool { return x.Email == u.Email && x.ID != u.ID })) > 0 {
		return false, domain.DuplicateUser(u.Email)
	}
	cur.Name, cur.Surname, cur.Email, cur.Address = u.Name, u.Surname, u.Email, u.Address
	r.st.users.put(u.ID, cur, r.j)
	return true, nil
}

// cascade drops host rows of removed users, like the FK's ON DELETE CASCADE.
func (r userRepo) cascade() {
	r.st.hosts.remove(func(h *domain.Host) bool {
		_, ok := r.st.users.get(h.UserID)
		return !ok
	}, r.j)
}

func (r userRepo) DeleteByID(_ context.Context, id int64) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	n := r.st.users.remove(func(u *domain.User) bool { return u.ID == id }, r.j)
	r.cascade()
	return n > 0, nil
}

func (r userRepo) DeleteByName(_ context.Context, name string) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	n := r.st.users.remove(func(u *domain.User) bool { return u.Name == name }, r.j)
	r.cascade()
	return n > 0, nil
}

func (r userRepo) DeleteAll(context.Context) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	n := r.st.users.remove(func(*domain.User) bool { return true }, r.j)
	r.cascade()
	return n, nil
}

func (r userRepo) TopTravelers(_ context.Context, p domain.Period, limit int) ([]domain.Traveler, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	nights := map[int64]int64{}
	for _, res := range r.st.res.filter(func(x *domain.Reservation) bool { return p.Contains(x.StartDate) }) {
		nights[res.UserID] += res.Nights()
	}
	out := make([]domain.Traveler, 0, len(nights))
	for id, n := range nights {
		u, ok := r.st.users.get(id)
		if !ok {
			continue
		}
		out = append(out, domain.Traveler{UserID: id, Name: u.Name, Surname: u.Surname, Nights: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Nights != out[j].Nights {
			return out[i].Nights > out[j].Nights
		}
		return out[i].UserID < out[j].UserID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
