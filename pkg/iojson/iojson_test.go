package iojson

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLine(&buf, map[string]int{"page": 2}))
	require.NoError(t, WriteLine(&buf, []string{"a"}))

	assert.Equal(t, "{\"page\":2}\n[\"a\"]\n", buf.String())
}

func TestWriteLine_MarshalError(t *testing.T) {
	err := WriteLine(&bytes.Buffer{}, make(chan int))
	require.Error(t, err)
}

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, WriteWith(&out, &errOut, map[string]bool{"ok": true}))

	assert.Equal(t, "{\n  \"ok\": true\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestMarshalError(t *testing.T) {
	got := MarshalError("bad input", map[string]any{"field": "page"})
	assert.Contains(t, got, `"message": "bad input"`)
	assert.Contains(t, got, `"field": "page"`)
}

func TestFileReader_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"a"},{"id":"b"}]`), 0o644))

	fr := &FileReader[[]map[string]string]{fileFlagValue: path}
	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, []map[string]string{{"id": "a"}, {"id": "b"}}, got)
}

func TestFileReader_MissingFile(t *testing.T) {
	fr := &FileReader[[]string]{fileFlagValue: filepath.Join(t.TempDir(), "nope.json")}
	_, err := fr.Read()
	require.Error(t, err)
}
