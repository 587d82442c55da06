package iojson

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteLine(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, WriteLine(&out, map[string]int{"a": 1}))
	require.NoError(t, WriteLine(&out, map[string]int{"b": 2}))
	assert.Equal(t, "{\"a\":1}\n{\"b\":2}\n", out.String())
}

func TestWriteWith_MarshalFailure(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]any{"f": func() {}}))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), `"message":"marshal output"`)
}

type pair struct {
	Years string `json:"years"`
}

func TestFileReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"years":"1969"}]`), 0o644))

	fr := &FileReader[[]pair]{}
	assert.False(t, fr.Provided())

	fr.path = path
	assert.True(t, fr.Provided())

	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, []pair{{Years: "1969"}}, got)
}

func TestFileReader_Stdin(t *testing.T) {
	fr := &FileReader[[]pair]{path: "-", stdin: strings.NewReader(`[{"years":"1"}]`)}

	got, err := fr.Read()
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "stdin", fr.Name())
}

func TestFileReader_BadJSON(t *testing.T) {
	fr := &FileReader[[]pair]{path: "-", stdin: strings.NewReader(`{`)}

	_, err := fr.Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin")
}
