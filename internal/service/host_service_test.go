package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-platform/internal/core/config"
	"booking-platform/internal/domain"
)

func TestHostPromotionIsOncePerUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for i := 1; i <= 7; i++ {
		f.user(t, fmt.Sprintf("user%d", i))
	}

	h, err := f.Hosts.Create(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), h.UserID)
	assert.Equal(t, now, h.RegisteredAt)
	require.NotNil(t, h.User)
	assert.Equal(t, "user7", h.User.Name)

	for i := 0; i < 3; i++ {
		_, err = f.Hosts.Create(ctx, 7)
		de := requireKind(t, err, domain.KindDuplicateHost)
		assert.Equal(t, int64(7), de.Details["userId"])
	}

	all, err := f.Hosts.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestConcurrentHostPromotion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "anna")

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		oks int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.Hosts.Create(ctx, u.ID)
			if err == nil {
				mu.Lock()
				oks++
				mu.Unlock()
				return
			}
			assert.True(t, domain.IsKind(err, domain.KindDuplicateHost), "got %v", err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, oks)
}

func TestHostCreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.Hosts.Create(ctx, 0)
	requireKind(t, err, domain.KindInvalidArgument)
	_, err = f.Hosts.Create(ctx, 42)
	requireKind(t, err, domain.KindUserNotFound)
}

func TestHostUpdateGoesThroughUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	h := f.host(t, "anna")

	u := *h.User
	u.Address = "Via Po 2"
	got, err := f.Hosts.Update(ctx, &domain.Host{ID: h.ID, UserID: h.UserID, User: &u})
	require.NoError(t, err)
	assert.Equal(t, "Via Po 2", got.User.Address)
	assert.Equal(t, h.RegisteredAt, got.RegisteredAt)

	t.Run("missing host keeps the user change", func(t *testing.T) {
		u.Address = "Via Dante 3"
		_, err := f.Hosts.Update(ctx, &domain.Host{ID: 404, UserID: h.UserID, User: &u})
		requireKind(t, err, domain.KindHostNotFound)
		stored, err := f.Users.FindByID(ctx, h.UserID)
		require.NoError(t, err)
		assert.Equal(t, "Via Dante 3", stored.Address)
	})

	t.Run("missing user", func(t *testing.T) {
		ghost := domain.User{Name: "ghost", Email: "ghost@example.com"}
		_, err := f.Hosts.Update(ctx, &domain.Host{ID: h.ID, UserID: 404, User: &ghost})
		requireKind(t, err, domain.KindUserNotFound)
	})

	t.Run("reassigning to a missing user", func(t *testing.T) {
		_, err := f.Hosts.Update(ctx, &domain.Host{ID: h.ID, UserID: 404})
		requireKind(t, err, domain.KindUserNotFound)
		stored, err := f.Hosts.FindByID(ctx, h.ID)
		require.NoError(t, err)
		assert.Equal(t, h.UserID, stored.UserID)
	})

	t.Run("non-positive id", func(t *testing.T) {
		_, err := f.Hosts.Update(ctx, &domain.Host{UserID: h.UserID})
		requireKind(t, err, domain.KindInvalidArgument)
	})
}

func TestHostReadsAndDeletes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	h := f.host(t, "anna")

	a, err := f.Hosts.FindByID(ctx, h.ID)
	require.NoError(t, err)
	b, err := f.Hosts.FindByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	byUser, err := f.Hosts.FindByUserID(ctx, h.UserID)
	require.NoError(t, err)
	assert.Equal(t, h.ID, byUser.ID)

	other := f.user(t, "bea")
	_, err = f.Hosts.FindByUserID(ctx, other.ID)
	requireKind(t, err, domain.KindHostNotFound)

	require.NoError(t, f.Hosts.DeleteByID(ctx, h.ID))
	requireKind(t, f.Hosts.DeleteByID(ctx, h.ID), domain.KindHostNotFound)
	_, err = f.Hosts.FindByID(ctx, h.ID)
	requireKind(t, err, domain.KindHostNotFound)
}

func TestHostRankings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(b *config.Booking) { b.SuperHostMinReservations = 2 })
	anna := f.host(t, "anna")
	bea := f.host(t, "bea")
	carla := f.host(t, "carla")
	guest := f.user(t, "guest")
	a1 := f.listing(t, anna.ID, "2025-04-01", "2025-07-01")
	a2 := f.listing(t, bea.ID, "2025-04-01", "2025-07-01")
	a3 := f.listing(t, carla.ID, "2025-04-01", "2025-07-01")

	// window is 2025-04-16..2025-05-15
	f.seedDirect(t, guest.ID, a1.ID, "2025-04-20", "2025-04-22")
	f.seedDirect(t, guest.ID, a2.ID, "2025-04-21", "2025-04-22")
	f.seedDirect(t, guest.ID, a2.ID, "2025-05-01", "2025-05-02")
	f.seedDirect(t, guest.ID, a3.ID, "2025-04-10", "2025-04-12")
	f.seedDirect(t, guest.ID, a3.ID, "2025-04-01", "2025-04-02")

	top, err := f.Hosts.TopHostsLastMonth(ctx)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, bea.ID, top[0].HostID)
	assert.Equal(t, int64(2), top[0].Reservations)
	assert.Equal(t, anna.ID, top[1].HostID)

	super, err := f.Hosts.SuperHosts(ctx)
	require.NoError(t, err)
	require.Len(t, super, 2)
	assert.Equal(t, []int64{bea.ID, carla.ID}, []int64{super[0].HostID, super[1].HostID})
}
