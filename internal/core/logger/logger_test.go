package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"booking-platform/internal/core/config"
)

func TestFromConfigWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booking.log")
	l, closer := FromConfig(config.Log{
		Level: "info",
		JSON:  true,
		File:  config.LogFile{Enable: true, Filename: path, MaxSizeMB: 1},
	})
	l.Info("reservation admitted", zap.Int64("reservationId", 42))
	closer()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"reservation admitted"`)
	assert.Contains(t, string(b), `"reservationId":42`)
}

func TestBuildFallsBackToInfoOnBadLevel(t *testing.T) {
	l, closer := Build(Options{Level: "loud"})
	defer closer()
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestToWriterTrimsNewline(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	w := ToWriter(zap.New(core), zapcore.WarnLevel)
	_, err := w.Write([]byte("http: TLS handshake error\n"))
	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "http: TLS handshake error", logs.All()[0].Message)
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}
