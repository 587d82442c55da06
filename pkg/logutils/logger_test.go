package logutils

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "histline.log")

	l, closer, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	l.Debug().Msg("hidden")
	l.Info().Str("k", "v").Msg("shown")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "v", entry["k"])
}

func TestNew_Fallback(t *testing.T) {
	var buf bytes.Buffer

	l, closer, err := New(Options{Level: "debug", Console: &buf, NoColor: true})
	require.NoError(t, err)
	defer closer()

	l.Debug().Str("k", "v").Msg("to console")
	assert.Contains(t, buf.String(), "to console")
	assert.Contains(t, buf.String(), "k=v")
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud", Console: &bytes.Buffer{}})
	assert.Error(t, err)
}
