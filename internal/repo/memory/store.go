// Package memory is an in-process domain.Store for tests and the
// db.driver=memory mode. It mirrors the gorm store's observable behaviour,
// including unique-key and cascade rules.
package memory

import (
	"context"
	"sort"
	"sync"

	"booking-platform/internal/domain"
)

type table[T any] struct {
	rows map[int64]T
	seq  int64
	id   func(*T) *int64
}

func newTable[T any](id func(*T) *int64) *table[T] {
	return &table[T]{rows: map[int64]T{}, id: id}
}

func (t *table[T]) insert(v *T, j *journal) {
	t.seq++
	id := t.seq
	*t.id(v) = id
	t.rows[id] = *v
	j.record(func() { delete(t.rows, id) })
}

func (t *table[T]) get(id int64) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) put(id int64, v T, j *journal) {
	if old, ok := t.rows[id]; ok {
		j.record(func() { t.rows[id] = old })
	} else {
		j.record(func() { delete(t.rows, id) })
	}
	t.rows[id] = v
}

// filter returns matching rows ordered by id.
func (t *table[T]) filter(keep func(*T) bool) []T {
	out := make([]T, 0, len(t.rows))
	for _, v := range t.rows {
		if keep == nil || keep(&v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return *t.id(&out[i]) < *t.id(&out[j]) })
	return out
}

func (t *table[T]) remove(keep func(*T) bool, j *journal) int64 {
	var n int64
	for id, v := range t.rows {
		id, v := id, v
		if keep(&v) {
			delete(t.rows, id)
			j.record(func() { t.rows[id] = v })
			n++
		}
	}
	return n
}

// journal holds the inverse of every write made through one transaction.
// A nil journal records nothing.
type journal struct {
	undo []func()
}

func (j *journal) record(f func()) {
	if j != nil {
		j.undo = append(j.undo, f)
	}
}

// rollback reverts the recorded writes newest first; the caller holds the
// state write lock.
func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

type state struct {
	mu    sync.RWMutex
	users *table[domain.User]
	hosts *table[domain.Host]
	accs  *table[domain.Accommodation]
	res   *table[domain.Reservation]
	fbs   *table[domain.Feedback]
}

var _ domain.Store = (*Store)(nil)

// Store is safe for concurrent use. Transactions run one at a time. A
// rollback undoes only the rows the transaction wrote, so writes made
// outside it in the meantime survive.
type Store struct {
	st   *state
	txMu *sync.Mutex
	j    *journal
}

func NewStore() *Store {
	return &Store{
		st: &state{
			users: newTable(func(u *domain.User) *int64 { return &u.ID }),
			hosts: newTable(func(h *domain.Host) *int64 { return &h.ID }),
			accs:  newTable(func(a *domain.Accommodation) *int64 { return &a.ID }),
			res:   newTable(func(r *domain.Reservation) *int64 { return &r.ID }),
			fbs:   newTable(func(f *domain.Feedback) *int64 { return &f.ID }),
		},
		txMu: &sync.Mutex{},
	}
}

func (s *Store) Users() domain.UserRepository                   { return userRepo{s.st, s.j} }
func (s *Store) Hosts() domain.HostRepository                   { return hostRepo{s.st, s.j} }
func (s *Store) Accommodations() domain.AccommodationRepository { return accommodationRepo{s.st, s.j} }
func (s *Store) Reservations() domain.ReservationRepository     { return reservationRepo{s.st, s.j} }
func (s *Store) Feedbacks() domain.FeedbackRepository           { return feedbackRepo{s.st, s.j} }

func (s *Store) Tx(ctx context.Context, fn func(tx domain.Store) error) error {
	if s.j != nil {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return domain.Storage("transaction", err)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	j := &journal{}
	if err := fn(&Store{st: s.st, txMu: s.txMu, j: j}); err != nil {
		s.st.mu.Lock()
		j.rollback()
		s.st.mu.Unlock()
		return err
	}
	return nil
}
