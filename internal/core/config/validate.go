package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/pagepick/internal/core/page"
	"github.com/hay-kot/pagepick/internal/core/styles"
	"github.com/hay-kot/pagepick/internal/core/validate"
)

// knownColumns are the record attributes the browser can show besides Fields keys.
var knownColumns = []string{"id", "title"}

// Validate checks that the configuration is structurally valid. It performs
// no I/O.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, notEmpty),
		c.validateSource(),
		criterio.Run("pagination.page_size", c.Pagination.PageSize, func(n int) error {
			return validate.PageSize(n, page.MaxPageSize)
		}),
		criterio.Run("pagination.start_page", c.Pagination.StartPage, func(n int) error {
			if n < page.FirstPage {
				return fmt.Errorf("must be at least %d", page.FirstPage)
			}
			return nil
		}),
		criterio.Run("bulk.max_count", c.Bulk.MaxCount, func(n int) error {
			if n < 1 {
				return fmt.Errorf("must be at least 1")
			}
			return nil
		}),
		criterio.Run("tui.theme", c.TUI.Theme, func(name string) error {
			if _, ok := styles.GetPalette(name); !ok {
				return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
			}
			return nil
		}),
		c.validateColumns(),
	)
}

func (c *Config) validateSource() error {
	var errs criterio.FieldErrorsBuilder

	if !c.Source.Kind.IsValid() {
		errs = errs.Append("source.kind", fmt.Errorf("must be one of %v, got %q", SourceKinds, c.Source.Kind))
	}

	switch c.Source.Kind {
	case SourceHTTP:
		if err := validate.HTTPURL(c.Source.URL); err != nil {
			errs = errs.Append("source.url", err)
		}
		if c.Source.Timeout < 0 {
			errs = errs.Append("source.timeout", errors.New("must not be negative"))
		}
	case SourceFile:
		if strings.TrimSpace(c.Source.Path) == "" {
			errs = errs.Append("source.path", errors.New("is required for file sources"))
		}
	}

	if c.Source.CachePages < 0 {
		errs = errs.Append("source.cache_pages", errors.New("must not be negative"))
	}

	return errs.ToError()
}

func (c *Config) validateColumns() error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool, len(c.TUI.Columns))
	for i, col := range c.TUI.Columns {
		field := fmt.Sprintf("tui.columns[%d]", i)
		if strings.TrimSpace(col) == "" {
			errs = errs.Append(field, errors.New("must not be empty"))
			continue
		}
		if seen[col] {
			errs = errs.Append(field, fmt.Errorf("duplicate column %q", col))
		}
		seen[col] = true
	}
	return errs.ToError()
}

// ValidateDeep performs comprehensive validation including file access checks.
// The configPath argument is the config file location (empty skips that check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		c.validateSourceAccess(),
	)
}

func (c *Config) validateSourceAccess() error {
	if c.Source.Kind != SourceFile {
		return nil
	}
	return criterio.Run("source.path", c.Source.Path, func(pattern string) error {
		_, err := validate.MatchFiles(pattern)
		return err
	})
}

// IsKnownColumn reports whether col is a built-in column rather than a Fields key.
func IsKnownColumn(col string) bool {
	return slices.Contains(knownColumns, col)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
