package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"booking-platform/internal/core/clock"
	"booking-platform/internal/core/config"
	"booking-platform/internal/domain"
	"booking-platform/internal/repo/memory"
)

// now sits before every date used by the reservation scenarios.
var now = time.Date(2025, 5, 15, 10, 30, 0, 0, time.UTC)

type fixture struct {
	*Services
	store *memory.Store
	logs  *observer.ObservedLogs
}

func newFixture(t *testing.T, opts ...func(*config.Booking)) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	b := config.Default().Booking
	for _, o := range opts {
		o(&b)
	}
	store := memory.NewStore()
	return &fixture{
		Services: New(store, Options{Log: zap.New(core), Clock: clock.Fixed(now), Booking: b}),
		store:    store,
		logs:     logs,
	}
}

func day(s string) time.Time {
	t, err := domain.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (f *fixture) user(t *testing.T, name string) *domain.User {
	t.Helper()
	u, err := f.Users.Create(context.Background(), &domain.User{
		Name: name, Surname: "Test", Email: fmt.Sprintf("%s@example.com", name),
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) host(t *testing.T, name string) *domain.Host {
	t.Helper()
	h, err := f.Hosts.Create(context.Background(), f.user(t, name).ID)
	require.NoError(t, err)
	return h
}

func (f *fixture) listing(t *testing.T, hostID int64, start, end string) *domain.Accommodation {
	t.Helper()
	a, err := f.Accommodations.Create(context.Background(), &domain.Accommodation{
		Name: "Casa", Address: "Via Roma 1", RoomCount: 2, BedCount: 4, PricePerNight: 120,
		AvailabilityStart: day(start), AvailabilityEnd: day(end), HostID: hostID,
	})
	require.NoError(t, err)
	return a
}

// seedDirect writes a reservation bypassing admission, for ranking tests that
// need start dates in the past.
func (f *fixture) seedDirect(t *testing.T, userID, accID int64, start, end string) {
	t.Helper()
	require.NoError(t, f.store.Reservations().Create(context.Background(), &domain.Reservation{
		UserID: userID, AccommodationID: accID, StartDate: day(start), EndDate: day(end), CreatedAt: now,
	}))
}

func requireKind(t *testing.T, err error, k domain.Kind) *domain.Error {
	t.Helper()
	require.Error(t, err)
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	require.Equal(t, k, de.Kind, "error: %v", err)
	return de
}
