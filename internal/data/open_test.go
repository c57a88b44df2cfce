package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/pagepick/internal/core/config"
	"github.com/hay-kot/pagepick/internal/core/page"
	"github.com/hay-kot/pagepick/internal/data/db"
	"github.com/hay-kot/pagepick/internal/data/stores"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func TestOpenFetcher_SQLite(t *testing.T) {
	cfg := testConfig(t)

	f, closer, err := OpenFetcher(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer() })

	_, isCached := f.(*page.CachedFetcher)
	assert.True(t, isCached)

	res, err := f.Fetch(context.Background(), page.Request{Number: 1, Size: 10})
	require.NoError(t, err)
	assert.Zero(t, res.Total)
}

func TestOpenFetcher_HTTPUncached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"id":"a"}],"total":1}`))
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(t)
	cfg.Source.Kind = config.SourceHTTP
	cfg.Source.URL = srv.URL
	cfg.Source.Cache = false

	f, closer, err := OpenFetcher(cfg)
	require.NoError(t, err)
	require.NoError(t, closer())

	_, isCached := f.(*page.CachedFetcher)
	assert.False(t, isCached)

	res, err := f.Fetch(context.Background(), page.Request{Number: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestOpenFetcher_File(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`[{"id":"1"},{"id":"2"}]`), 0o644))

	cfg := testConfig(t)
	cfg.Source.Kind = config.SourceFile
	cfg.Source.Path = filepath.Join(dir, "*.json")

	f, _, err := OpenFetcher(cfg)
	require.NoError(t, err)

	res, err := f.Fetch(context.Background(), page.Request{Number: 1, Size: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
}

func TestOpenFetcher_Errors(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source.Kind = "carrier-pigeon"
	_, _, err := OpenFetcher(cfg)
	assert.Error(t, err)

	cfg.Source.Kind = config.SourceFile
	cfg.Source.Path = filepath.Join(t.TempDir(), "*.json")
	_, _, err = OpenFetcher(cfg)
	assert.Error(t, err)
}

func TestOpenCatalog_RecoversCorruption(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, db.FileName), []byte("definitely not sqlite"), 0o644))

	database, err := OpenCatalog(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	n, err := stores.NewRecordStore(database).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	backups, _ := filepath.Glob(filepath.Join(cfg.DataDir, db.FileName+".corrupt.*"))
	assert.NotEmpty(t, backups)
}
