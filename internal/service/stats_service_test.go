package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsSnapshotWithoutCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	snap, err := f.Stats.Snapshot(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap.MostPopular)
	assert.Empty(t, snap.TopHosts)
	assert.Equal(t, 30, snap.WindowDays)

	h := f.host(t, "anna")
	guest := f.user(t, "guest")
	acc := f.listing(t, h.ID, "2025-04-01", "2025-06-30")
	f.seedDirect(t, guest.ID, acc.ID, "2025-05-01", "2025-05-04")

	snap, err = f.Stats.Snapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.MostPopular)
	assert.Equal(t, acc.ID, snap.MostPopular.Accommodation.ID)
	require.Len(t, snap.TopTravelers, 1)
	assert.Equal(t, int64(3), snap.TopTravelers[0].Nights)
	assert.InDelta(t, 4.0, snap.AverageBedCount, 1e-9)

	require.NoError(t, f.Stats.Warm(ctx))
	n, err := f.Stats.Purge(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStatsKeyCarriesDay(t *testing.T) {
	assert.Equal(t, "stats:top-hosts:2025-05-15", statsKey("top-hosts", day("2025-05-15")))
}
