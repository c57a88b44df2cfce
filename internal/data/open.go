// Package data builds the configured record source.
package data

import (
	"fmt"

	"github.com/hay-kot/pagepick/internal/core/config"
	"github.com/hay-kot/pagepick/internal/core/logging"
	"github.com/hay-kot/pagepick/internal/core/page"
	"github.com/hay-kot/pagepick/internal/data/db"
	"github.com/hay-kot/pagepick/internal/data/filesource"
	"github.com/hay-kot/pagepick/internal/data/remote"
	"github.com/hay-kot/pagepick/internal/data/stores"
)

// OpenFetcher builds the fetcher selected by cfg.Source.Kind, wrapping it in
// a page cache when enabled. The returned closer releases any resources the
// source holds and is safe to call when err is nil.
func OpenFetcher(cfg *config.Config) (page.Fetcher, func() error, error) {
	var (
		fetcher page.Fetcher
		closer  = func() error { return nil }
	)

	switch cfg.Source.Kind {
	case config.SourceSQLite:
		database, err := OpenCatalog(cfg)
		if err != nil {
			return nil, nil, err
		}
		fetcher = stores.NewRecordStore(database)
		closer = database.Close
	case config.SourceHTTP:
		client, err := remote.New(cfg.Source.URL, cfg.Source.Timeout)
		if err != nil {
			return nil, nil, err
		}
		fetcher = client
	case config.SourceFile:
		src, err := filesource.Open(cfg.Source.Path)
		if err != nil {
			return nil, nil, err
		}
		fetcher = src
	default:
		return nil, nil, fmt.Errorf("unsupported source kind %q", cfg.Source.Kind)
	}

	if cfg.Source.Cache {
		fetcher = page.NewCachedFetcher(fetcher, cfg.Source.CachePages)
	}

	l := logging.Component("data")
	l.Debug().
		Str("kind", string(cfg.Source.Kind)).
		Bool("cache", cfg.Source.Cache).
		Msg("source opened")

	return fetcher, closer, nil
}

// OpenCatalog opens the SQLite catalog in the data directory. A corrupted
// catalog is moved aside and recreated once.
func OpenCatalog(cfg *config.Config) (*db.DB, error) {
	opts := db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	}

	database, err := db.Open(cfg.DataDir, opts)
	if err == nil {
		return database, nil
	}
	if !stores.IsCorruptionError(err) {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	l := logging.Component("data")
	l.Warn().Err(err).Str("data_dir", cfg.DataDir).Msg("catalog corrupted, recreating")
	if rerr := stores.RecoverFromCorruption(cfg.DataDir); rerr != nil {
		return nil, fmt.Errorf("recover catalog: %w", rerr)
	}

	database, err = db.Open(cfg.DataDir, opts)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	return database, nil
}
