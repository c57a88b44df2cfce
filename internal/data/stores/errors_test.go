package stores

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/pagepick/internal/data/db"
)

func TestRecoverFromCorruption(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, db.FileName)

	require.NoError(t, os.WriteFile(dbPath, []byte("corrupted data"), 0o644))
	require.NoError(t, os.WriteFile(dbPath+"-wal", []byte("wal"), 0o644))
	require.NoError(t, os.WriteFile(dbPath+"-shm", []byte("shm"), 0o644))

	require.NoError(t, RecoverFromCorruption(dir))

	backups, err := filepath.Glob(filepath.Join(dir, db.FileName+".corrupt.*"))
	require.NoError(t, err)
	require.Len(t, backups, 3)

	var sides int
	for _, b := range backups {
		if strings.HasSuffix(b, "-wal") || strings.HasSuffix(b, "-shm") {
			sides++
		}
	}
	assert.Equal(t, 2, sides)

	for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		_, err := os.Stat(p)
		assert.True(t, os.IsNotExist(err), "%s should be moved", p)
	}
}

func TestRecoverFromCorruption_MissingFile(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, RecoverFromCorruption(dir))

	files, _ := filepath.Glob(filepath.Join(dir, "*.corrupt.*"))
	assert.Empty(t, files)
}

func TestRecoverFromCorruption_ThenOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, db.FileName), []byte("not sqlite at all, just text"), 0o644))

	_, err := db.Open(dir, db.DefaultOpenOptions())
	require.Error(t, err)
	require.True(t, IsCorruptionError(err), "got %v", err)

	require.NoError(t, RecoverFromCorruption(dir))

	database, err := db.Open(dir, db.DefaultOpenOptions())
	require.NoError(t, err)
	_ = database.Close()
}

func TestErrorClassifiers(t *testing.T) {
	assert.False(t, IsCorruptionError(nil))
	assert.False(t, IsBusyError(errors.New("busy")))
	assert.True(t, IsCorruptionError(errors.New("file is not a database (26)")))
	assert.False(t, IsCorruptionError(errors.New("no such table")))
}
