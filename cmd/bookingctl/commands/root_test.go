package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-platform/internal/domain"
)

func memoryConfig(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("db:\n  driver: memory\ncache:\n  enabled: false\n"), 0o600))
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStatsCommands(t *testing.T) {
	cfg := memoryConfig(t)

	t.Run("snapshot on empty store", func(t *testing.T) {
		out, err := run(t, "stats", "snapshot", "--config", cfg)
		require.NoError(t, err)
		assert.Contains(t, out, `"windowDays": 30`)
		assert.Contains(t, out, `"mostPopular": null`)
	})

	t.Run("popular with no reservations", func(t *testing.T) {
		_, err := run(t, "stats", "popular", "--config", cfg)
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindAccommodationNotFound))
	})
}

func TestMigrateNeedsSQLDriver(t *testing.T) {
	_, err := run(t, "migrate", "--config", memoryConfig(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memory")
}

func TestMissingConfig(t *testing.T) {
	_, err := run(t, "stats", "top-hosts", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
