//go:build integration

package repo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"booking-platform/internal/core/database"
	"booking-platform/internal/domain"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("booking"),
		postgres.WithUsername("booking"),
		postgres.WithPassword("booking"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable", "TimeZone=UTC")
	require.NoError(t, err)

	db, err := database.NewGorm(database.Opts{
		Driver:             "postgres",
		DSN:                dsn,
		MaxOpenConns:       10,
		MaxIdleConns:       5,
		ConnMaxLifetimeMin: 5,
		LogLevel:           "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(ctx, db))
	t.Cleanup(func() { _ = database.Close(db) })
	return NewStore(db)
}

func day(s string) time.Time {
	t, err := domain.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStoreIntegration(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	anna := &domain.User{Name: "Anna", Surname: "Rossi", Email: "anna@example.com", RegisteredAt: time.Now()}
	bea := &domain.User{Name: "Bea", Surname: "Bianchi", Email: "bea@example.com", RegisteredAt: time.Now()}
	require.NoError(t, s.Users().Create(ctx, anna))
	require.NoError(t, s.Users().Create(ctx, bea))

	t.Run("duplicate email maps to DuplicateUser", func(t *testing.T) {
		err := s.Users().Create(ctx, &domain.User{Name: "X", Email: "anna@example.com", RegisteredAt: time.Now()})
		assert.True(t, domain.IsKind(err, domain.KindDuplicateUser), "got %v", err)
	})

	host := &domain.Host{UserID: anna.ID, RegisteredAt: time.Now()}
	require.NoError(t, s.Hosts().Create(ctx, host))

	t.Run("unique index backs one host per user", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make([]error, 4)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = s.Hosts().Create(ctx, &domain.Host{UserID: anna.ID, RegisteredAt: time.Now()})
			}(i)
		}
		wg.Wait()
		for _, err := range errs {
			assert.True(t, domain.IsKind(err, domain.KindDuplicateHost), "got %v", err)
		}
		got, err := s.Hosts().FindByUserID(ctx, anna.ID)
		require.NoError(t, err)
		assert.Equal(t, host.ID, got.ID)
		require.NotNil(t, got.User)
		assert.Equal(t, "Anna", got.User.Name)
	})

	acc := &domain.Accommodation{
		Name: "Loft", Address: "Via Roma 1", RoomCount: 2, BedCount: 3, PricePerNight: 89.5,
		AvailabilityStart: day("2025-06-01"), AvailabilityEnd: day("2025-06-30"), HostID: host.ID,
	}
	require.NoError(t, s.Accommodations().Create(ctx, acc))

	t.Run("dates round-trip as days", func(t *testing.T) {
		got, err := s.Accommodations().FindByID(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, "2025-06-01", got.AvailabilityStart.Format(domain.DayLayout))
		assert.Equal(t, "2025-06-30", got.AvailabilityEnd.Format(domain.DayLayout))
		assert.InDelta(t, 89.5, got.PricePerNight, 1e-9)
	})

	t.Run("reservation inside locked transaction", func(t *testing.T) {
		err := s.Tx(ctx, func(tx domain.Store) error {
			a, err := tx.Accommodations().FindByIDForUpdate(ctx, acc.ID)
			if err != nil {
				return err
			}
			require.NotNil(t, a)
			return tx.Reservations().Create(ctx, &domain.Reservation{
				UserID: bea.ID, AccommodationID: a.ID,
				StartDate: day("2025-06-10"), EndDate: day("2025-06-15"), CreatedAt: time.Now(),
			})
		})
		require.NoError(t, err)

		over, err := s.Reservations().FindOverlapping(ctx, acc.ID, day("2025-06-14"), day("2025-06-20"))
		require.NoError(t, err)
		assert.Len(t, over, 1)
		over, err = s.Reservations().FindOverlapping(ctx, acc.ID, day("2025-06-15"), day("2025-06-20"))
		require.NoError(t, err)
		assert.Empty(t, over)
	})

	t.Run("rollback leaves no row", func(t *testing.T) {
		err := s.Tx(ctx, func(tx domain.Store) error {
			require.NoError(t, tx.Reservations().Create(ctx, &domain.Reservation{
				UserID: bea.ID, AccommodationID: acc.ID,
				StartDate: day("2025-06-20"), EndDate: day("2025-06-21"), CreatedAt: time.Now(),
			}))
			return domain.NewError(domain.KindOverlappingReservation, "abort")
		})
		assert.True(t, domain.IsKind(err, domain.KindOverlappingReservation))
		all, err := s.Reservations().FindByUser(ctx, bea.ID)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("rankings", func(t *testing.T) {
		p := domain.Period{From: day("2025-06-01"), To: day("2025-06-30")}
		top, err := s.Accommodations().MostPopular(ctx, p)
		require.NoError(t, err)
		require.NotNil(t, top)
		assert.Equal(t, acc.ID, top.Accommodation.ID)
		assert.Equal(t, int64(1), top.Reservations)

		hosts, err := s.Hosts().RankByReservations(ctx, p)
		require.NoError(t, err)
		require.Len(t, hosts, 1)
		assert.Equal(t, domain.HostRanking{HostID: host.ID, Name: "Anna", Surname: "Rossi", Reservations: 1}, hosts[0])

		travelers, err := s.Users().TopTravelers(ctx, p, 5)
		require.NoError(t, err)
		require.Len(t, travelers, 1)
		assert.Equal(t, int64(5), travelers[0].Nights)

		avg, err := s.Accommodations().AverageBedCount(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 3.0, avg, 1e-9)
	})

	t.Run("most popular ignores reservations of deleted listings", func(t *testing.T) {
		gone := &domain.Accommodation{
			Name: "Gone", Address: "Via Roma 9", RoomCount: 1, BedCount: 1, PricePerNight: 50,
			AvailabilityStart: day("2025-06-01"), AvailabilityEnd: day("2025-06-30"), HostID: host.ID,
		}
		require.NoError(t, s.Accommodations().Create(ctx, gone))
		var ids []int64
		for _, start := range []string{"2025-06-02", "2025-06-04"} {
			r := &domain.Reservation{
				UserID: bea.ID, AccommodationID: gone.ID,
				StartDate: day(start), EndDate: day(start).AddDate(0, 0, 1), CreatedAt: time.Now(),
			}
			require.NoError(t, s.Reservations().Create(ctx, r))
			ids = append(ids, r.ID)
		}
		ok, err := s.Accommodations().DeleteByID(ctx, gone.ID)
		require.NoError(t, err)
		require.True(t, ok)

		top, err := s.Accommodations().MostPopular(ctx, domain.Period{From: day("2025-06-01"), To: day("2025-06-30")})
		require.NoError(t, err)
		require.NotNil(t, top)
		assert.Equal(t, acc.ID, top.Accommodation.ID)

		for _, id := range ids {
			_, err := s.Reservations().DeleteByID(ctx, id)
			require.NoError(t, err)
		}
	})

	t.Run("host update to a missing user fails in storage", func(t *testing.T) {
		_, err := s.Hosts().Update(ctx, &domain.Host{ID: host.ID, UserID: 987654})
		assert.True(t, domain.IsKind(err, domain.KindStorage), "got %v", err)
	})

	t.Run("update reports missing rows", func(t *testing.T) {
		ok, err := s.Reservations().Update(ctx, &domain.Reservation{ID: 9999})
		require.NoError(t, err)
		assert.False(t, ok)

		bea.Address = "Via Po 2"
		ok, err = s.Users().Update(ctx, bea)
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = s.Users().Update(ctx, bea)
		require.NoError(t, err)
		assert.True(t, ok, "unchanged row still matches")
	})

	t.Run("deleting a user cascades to its host", func(t *testing.T) {
		n, err := s.Reservations().DeleteAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		ok, err := s.Users().DeleteByID(ctx, anna.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		h, err := s.Hosts().FindByID(ctx, host.ID)
		require.NoError(t, err)
		assert.Nil(t, h)
	})
}
