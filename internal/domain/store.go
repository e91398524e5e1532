package domain

import "context"

// Store hands out repositories bound to one storage handle. Tx runs fn with a
// Store bound to a transaction; returning an error rolls it back.
type Store interface {
	Users() UserRepository
	Hosts() HostRepository
	Accommodations() AccommodationRepository
	Reservations() ReservationRepository
	Feedbacks() FeedbackRepository
	Tx(ctx context.Context, fn func(tx Store) error) error
}

// Models lists every persisted entity, in dependency order.
func Models() []any {
	return []any{&User{}, &Host{}, &Accommodation{}, &Reservation{}, &Feedback{}}
}
