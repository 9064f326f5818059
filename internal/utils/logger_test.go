package utils

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewLoggerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, slog.LevelWarn)

	log.Info("hidden")
	log.Warn("shown", "uid", "04A2B3")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "uid=04A2B3")
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nfcnav.log")
	f, err := OpenLogFile(path)
	require.NoError(t, err)
	defer f.Close()

	NewLogger(f, slog.LevelInfo).Info("started")
	assert.FileExists(t, path)

	_, err = OpenLogFile(filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.Error(t, err)
}
