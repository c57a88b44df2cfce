// Package config handles configuration loading and validation for pagepick.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/pagepick/internal/core/page"
	"github.com/hay-kot/pagepick/internal/core/styles"
)

// SourceKind selects the record source implementation.
type SourceKind string

const (
	SourceSQLite SourceKind = "sqlite"
	SourceHTTP   SourceKind = "http"
	SourceFile   SourceKind = "file"
)

// SourceKinds lists the supported source kinds.
var SourceKinds = []SourceKind{SourceSQLite, SourceHTTP, SourceFile}

// IsValid reports whether k names a supported source.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceSQLite, SourceHTTP, SourceFile:
		return true
	}
	return false
}

// Config holds the application configuration.
type Config struct {
	Source     SourceConfig     `yaml:"source"`
	Pagination PaginationConfig `yaml:"pagination"`
	Bulk       BulkConfig       `yaml:"bulk"`
	TUI        TUIConfig        `yaml:"tui"`
	Database   DatabaseConfig   `yaml:"database"`
	DataDir    string           `yaml:"-"` // set by caller, not from config file
}

// SourceConfig configures where pages are fetched from.
type SourceConfig struct {
	Kind       SourceKind    `yaml:"kind"`
	URL        string        `yaml:"url"`         // http
	Path       string        `yaml:"path"`        // file glob, relative to the config file
	Timeout    time.Duration `yaml:"timeout"`     // http
	Cache      bool          `yaml:"cache"`       // keep fetched pages in memory
	CachePages int           `yaml:"cache_pages"` // bound on cached pages
}

// PaginationConfig holds paging defaults.
type PaginationConfig struct {
	PageSize  int `yaml:"page_size"`
	StartPage int `yaml:"start_page"`
}

// BulkConfig bounds the "select next N" command.
type BulkConfig struct {
	MaxCount int `yaml:"max_count"`
}

// TUIConfig holds browser presentation options.
type TUIConfig struct {
	Theme   string   `yaml:"theme"`
	Columns []string `yaml:"columns"`
}

// DatabaseConfig holds SQLite pool settings for the sqlite source.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			Kind:       SourceSQLite,
			Timeout:    10 * time.Second,
			Cache:      true,
			CachePages: page.DefaultCachePages,
		},
		Pagination: PaginationConfig{
			PageSize:  page.DefaultPageSize,
			StartPage: page.FirstPage,
		},
		Bulk: BulkConfig{
			MaxCount: 10000,
		},
		TUI: TUIConfig{
			Theme:   styles.DefaultTheme,
			Columns: []string{"title"},
		},
		Database: DatabaseConfig{
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			BusyTimeout:  5000,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
			cfg.resolvePaths(filepath.Dir(configPath))
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// resolvePaths anchors a relative file glob at the config file's directory.
func (c *Config) resolvePaths(configDir string) {
	if c.Source.Path != "" && !filepath.IsAbs(c.Source.Path) {
		c.Source.Path = filepath.Join(configDir, c.Source.Path)
	}
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Source.Kind == "" {
		c.Source.Kind = defaults.Source.Kind
	}
	if c.Source.Timeout == 0 {
		c.Source.Timeout = defaults.Source.Timeout
	}
	if c.Source.CachePages == 0 {
		c.Source.CachePages = defaults.Source.CachePages
	}
	if c.Pagination.PageSize == 0 {
		c.Pagination.PageSize = defaults.Pagination.PageSize
	}
	if c.Pagination.StartPage == 0 {
		c.Pagination.StartPage = defaults.Pagination.StartPage
	}
	if c.Bulk.MaxCount == 0 {
		c.Bulk.MaxCount = defaults.Bulk.MaxCount
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if len(c.TUI.Columns) == 0 {
		c.TUI.Columns = defaults.TUI.Columns
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
}

// Palette returns the configured theme palette. Validation guarantees the
// theme exists.
func (c *Config) Palette() styles.Palette {
	p, ok := styles.GetPalette(c.TUI.Theme)
	if !ok {
		p, _ = styles.GetPalette(styles.DefaultTheme)
	}
	return p
}

// LogPath returns the default log location inside dataDir.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, "pagepick.log")
}

// LogFile returns the default log location inside the data directory.
func (c *Config) LogFile() string {
	return LogPath(c.DataDir)
}

// Marshal renders c as YAML for writing a starter config.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
