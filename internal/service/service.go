// Package service holds the booking rules. Services are stateless; every
// call runs its storage work through the domain.Store it was built with.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"booking-platform/internal/core/cache"
	"booking-platform/internal/core/clock"
	"booking-platform/internal/core/config"
	"booking-platform/internal/domain"
)

type Options struct {
	Log      *zap.Logger
	Clock    clock.Clock
	Booking  config.Booking
	Cache    *cache.Cache // nil disables stats caching
	CacheTTL time.Duration
}

type Services struct {
	Users          *UserService
	Hosts          *HostService
	Accommodations *AccommodationService
	Reservations   *ReservationService
	Feedbacks      *FeedbackService
	Stats          *StatsService
}

func New(store domain.Store, o Options) *Services {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.Clock == nil {
		o.Clock = clock.System()
	}
	if o.Booking.PopularWindowDays <= 0 {
		o.Booking.PopularWindowDays = 30
	}
	if o.Booking.SuperHostMinReservations <= 0 {
		o.Booking.SuperHostMinReservations = 100
	}
	if o.Booking.TopTravelers <= 0 {
		o.Booking.TopTravelers = 5
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = time.Minute
	}
	b := base{store: store, clock: o.Clock, cfg: o.Booking, cache: o.Cache, ttl: o.CacheTTL}

	users := &UserService{base: b.named(o.Log, "user")}
	s := &Services{
		Users:          users,
		Hosts:          &HostService{base: b.named(o.Log, "host"), users: users},
		Accommodations: &AccommodationService{base: b.named(o.Log, "accommodation")},
		Reservations:   &ReservationService{base: b.named(o.Log, "reservation")},
		Feedbacks:      &FeedbackService{base: b.named(o.Log, "feedback")},
	}
	s.Stats = &StatsService{base: b.named(o.Log, "stats"), svc: s}
	return s
}

type base struct {
	log   *zap.Logger
	store domain.Store
	clock clock.Clock
	cfg   config.Booking
	cache *cache.Cache
	ttl   time.Duration
}

func (b base) named(l *zap.Logger, name string) base {
	b.log = l.Named(name)
	return b
}

func (b base) now() time.Time { return b.clock.Now().UTC() }

func (b base) today() time.Time { return domain.Day(b.clock.Now()) }

// window is the trailing "last month" period ending today.
func (b base) window() domain.Period { return domain.Trailing(b.clock.Now(), b.cfg.Window()) }

// cached serves key through the stats cache. The key carries today's date so
// a cached ranking never outlives the window it was computed for.
func cached[T any](ctx context.Context, b base, key string, load func(context.Context) (*T, error)) (*T, error) {
	return cache.GetOrLoadJSON(b.cache, ctx, statsKey(key, b.today()), b.ttl, load)
}

func statsKey(key string, today time.Time) string {
	return "stats:" + key + ":" + today.Format(domain.DayLayout)
}

func positive(name string, id int64) error {
	if id <= 0 {
		return domain.InvalidArgument("%s must be positive, got %d", name, id)
	}
	return nil
}
