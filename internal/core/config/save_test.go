package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Timeline.Scale = 25
	cfg.TUI.Theme = "gruvbox"
	require.NoError(t, Save(path, &cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, loaded.Timeline.Scale, 0)
	assert.Equal(t, "gruvbox", loaded.TUI.Theme)
	assert.Equal(t, DefaultStartYear, loaded.StartYear())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is cleaned up")
}

func TestSave_Errors(t *testing.T) {
	cfg := DefaultConfig()
	require.Error(t, Save("", &cfg))
	require.Error(t, Save(filepath.Join(t.TempDir(), "c.yaml"), nil))
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	backup, err := Backup(path)
	require.NoError(t, err)
	assert.Empty(t, backup, "nothing to back up")

	require.NoError(t, os.WriteFile(path, []byte("tui:\n  theme: paper\n"), 0o644))
	backup, err = Backup(path)
	require.NoError(t, err)
	assert.Equal(t, path+".bak", backup)

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "tui:\n  theme: paper\n", string(data))
}
