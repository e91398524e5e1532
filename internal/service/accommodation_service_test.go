package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-platform/internal/domain"
)

func TestAccommodationRequiresHost(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.Accommodations.Create(ctx, &domain.Accommodation{
		Name: "Nowhere", AvailabilityStart: day("2025-06-01"), AvailabilityEnd: day("2025-06-30"), HostID: 77,
	})
	de := requireKind(t, err, domain.KindHostNotFound)
	assert.Equal(t, int64(77), de.Details["hostId"])

	rows, err := f.store.Accommodations().FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAccommodationWindowValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	h := f.host(t, "anna")

	_, err := f.Accommodations.Create(ctx, &domain.Accommodation{Name: "x", AvailabilityEnd: day("2025-06-30"), HostID: h.ID})
	requireKind(t, err, domain.KindInvalidArgument)

	_, err = f.Accommodations.Create(ctx, &domain.Accommodation{
		Name: "x", AvailabilityStart: day("2025-06-30"), AvailabilityEnd: day("2025-06-01"), HostID: h.ID,
	})
	requireKind(t, err, domain.KindInvalidAvailabilityRange)

	one, err := f.Accommodations.Create(ctx, &domain.Accommodation{
		Name: "single day", AvailabilityStart: day("2025-06-01"), AvailabilityEnd: day("2025-06-01"), HostID: h.ID,
	})
	require.NoError(t, err)
	assert.Positive(t, one.ID)

	past, err := f.Accommodations.Create(ctx, &domain.Accommodation{
		Name: "old", AvailabilityStart: day("2025-01-01"), AvailabilityEnd: day("2025-12-31"), HostID: h.ID, RoomCount: -3,
	})
	require.NoError(t, err, "past start and odd counts are not rejected")
	assert.Equal(t, -3, past.RoomCount)
	assert.Equal(t, 1, f.logs.FilterMessage("availability window starts in the past").Len())
}

func TestAccommodationQueries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.Accommodations.FindAll(ctx)
	requireKind(t, err, domain.KindAccommodationNotFound)
	avg, err := f.Accommodations.AverageBedCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, avg)

	h := f.host(t, "anna")
	june := f.listing(t, h.ID, "2025-06-01", "2025-06-30")
	july, err := f.Accommodations.Create(ctx, &domain.Accommodation{
		Name: "Villa", RoomCount: 5, BedCount: 8, AvailabilityStart: day("2025-07-01"), AvailabilityEnd: day("2025-07-31"), HostID: h.ID,
	})
	require.NoError(t, err)

	all, err := f.Accommodations.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.Accommodations.FindByRoomCount(ctx, 0)
	requireKind(t, err, domain.KindInvalidQuery)
	rooms, err := f.Accommodations.FindByRoomCount(ctx, 5)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, july.ID, rooms[0].ID)

	cases := []struct {
		name       string
		start, end string
		want       []int64
	}{
		{"inside june", "2025-06-10", "2025-06-12", []int64{june.ID}},
		{"straddles both", "2025-06-30", "2025-07-01", []int64{june.ID, july.ID}},
		{"covers both", "2025-05-01", "2025-08-31", []int64{june.ID, july.ID}},
		{"after both", "2025-08-01", "2025-08-02", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.Accommodations.FindByAvailabilityRange(ctx, day(tc.start), day(tc.end))
			require.NoError(t, err)
			var ids []int64
			for _, a := range got {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
	_, err = f.Accommodations.FindByAvailabilityRange(ctx, day("2025-06-10"), day("2025-06-01"))
	requireKind(t, err, domain.KindInvalidRange)

	byHost, err := f.Accommodations.FindByHost(ctx, h.ID)
	require.NoError(t, err)
	assert.Len(t, byHost, 2)

	avg, err = f.Accommodations.AverageBedCount(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, avg, 1e-9)

	byName, err := f.Accommodations.FindByName(ctx, "Villa")
	require.NoError(t, err)
	assert.Len(t, byName, 1)
}

func TestMostPopularLastMonth(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	h := f.host(t, "anna")
	guest := f.user(t, "guest")

	_, err := f.Accommodations.FindMostPopularLastMonth(ctx)
	requireKind(t, err, domain.KindAccommodationNotFound)

	a := f.listing(t, h.ID, "2025-04-01", "2025-06-30")
	b := f.listing(t, h.ID, "2025-04-01", "2025-06-30")
	f.seedDirect(t, guest.ID, b.ID, "2025-05-01", "2025-05-03")
	f.seedDirect(t, guest.ID, a.ID, "2025-05-02", "2025-05-03")
	f.seedDirect(t, guest.ID, a.ID, "2025-04-01", "2025-04-03") // before the window

	p, err := f.Accommodations.FindMostPopularLastMonth(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, p.Accommodation.ID, "tie goes to the lowest id")
	assert.Equal(t, int64(1), p.Reservations)
}

func TestAccommodationUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	h := f.host(t, "anna")
	a := f.listing(t, h.ID, "2025-06-01", "2025-06-30")

	upd := *a
	upd.PricePerNight = 150
	upd.AvailabilityEnd = day("2025-05-01")
	_, err := f.Accommodations.Update(ctx, &upd)
	requireKind(t, err, domain.KindInvalidAvailabilityRange)

	upd.AvailabilityEnd = day("2025-09-30")
	got, err := f.Accommodations.Update(ctx, &upd)
	require.NoError(t, err)
	assert.Equal(t, 150.0, got.PricePerNight)

	upd.ID = 404
	_, err = f.Accommodations.Update(ctx, &upd)
	requireKind(t, err, domain.KindAccommodationNotFound)

	n, err := f.Accommodations.DeleteByName(ctx, "Casa")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	ok, err := f.Accommodations.DeleteByID(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
