package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDay(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestTrailingCountsWholeDays(t *testing.T) {
	now := time.Date(2025, 5, 15, 10, 30, 0, 0, time.UTC)

	p := Trailing(now, 30*24*time.Hour)
	assert.Equal(t, mustDay(t, "2025-04-16"), p.From)
	assert.Equal(t, mustDay(t, "2025-05-15"), p.To)
	assert.Equal(t, 30, int(p.To.Sub(p.From).Hours()/24)+1)

	assert.True(t, p.Contains(mustDay(t, "2025-04-16")))
	assert.False(t, p.Contains(mustDay(t, "2025-04-15")))
	assert.True(t, p.Contains(now))

	one := Trailing(now, 24*time.Hour)
	assert.Equal(t, one.From, one.To)
	assert.Equal(t, one, Trailing(now, 0))
}

func TestOverlapsSharesEndpoints(t *testing.T) {
	a, b := mustDay(t, "2025-06-01"), mustDay(t, "2025-06-05")
	assert.True(t, Overlaps(a, b, b, mustDay(t, "2025-06-09")))
	assert.False(t, Overlaps(a, b, mustDay(t, "2025-06-06"), mustDay(t, "2025-06-09")))
}
