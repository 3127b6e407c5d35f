package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(file, "info")
	require.NoError(t, err)

	log.Info("lock created: token=%s", "abc")
	log.Debug("hidden at info level")
	_ = log.Close()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "lock created: token=abc")
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")

	log, err := New(file, "verbose")
	require.NoError(t, err)

	log.Named("sweeper").Warn("removed %d locks", 2)
	_ = log.Close()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "removed 2 locks")
	assert.Contains(t, string(data), "sweeper")
}
