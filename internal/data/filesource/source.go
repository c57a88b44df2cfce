// Package filesource serves records loaded from local JSON, YAML or TOML files.
//
// Files are matched with a doublestar pattern such as "data/**/*.yaml" and
// concatenated in sorted path order. A JSON or YAML file holds either a list
// of records or a document with a top-level "records" list. TOML files must
// use the document form ([[records]] tables).
package filesource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/pagepick/internal/core/logging"
	"github.com/hay-kot/pagepick/internal/core/page"
	"github.com/hay-kot/pagepick/internal/core/validate"
)

// ErrNoFiles is returned when the pattern matches nothing.
var ErrNoFiles = validate.ErrNoFiles

// Source is an in-memory page.Fetcher over the matched files.
type Source struct {
	pattern string

	mu      sync.RWMutex
	records []page.Record
	files   []string
}

var (
	_ page.Fetcher     = (*Source)(nil)
	_ page.Invalidator = (*Source)(nil)
)

// Open matches pattern and loads every file.
func Open(pattern string) (*Source, error) {
	s := &Source{pattern: pattern}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the matched files, replacing the loaded records only when
// every file decodes.
func (s *Source) Reload() error {
	files, err := validate.MatchFiles(s.pattern)
	if err != nil {
		return err
	}

	var records []page.Record
	for _, f := range files {
		recs, err := ReadFile(f)
		if err != nil {
			return err
		}
		records = append(records, recs...)
	}

	s.mu.Lock()
	s.records = records
	s.files = files
	s.mu.Unlock()

	l := logging.Component("filesource")
	l.Debug().
		Str("pattern", s.pattern).
		Int("files", len(files)).
		Int("records", len(records)).
		Msg("records loaded")

	return nil
}

// Invalidate reloads from disk. A failed reload keeps the previous records.
func (s *Source) Invalidate() {
	if err := s.Reload(); err != nil {
		l := logging.Component("filesource")
		l.Warn().Err(err).Msg("reload failed")
	}
}

// Files returns the paths loaded by the last successful reload.
func (s *Source) Files() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.files)
}

// Fetch slices the loaded records.
func (s *Source) Fetch(ctx context.Context, req page.Request) (page.Result, error) {
	if err := req.Validate(); err != nil {
		return page.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return page.Result{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.records)
	start := min(req.Offset(), total)
	end := min(start+req.Size, total)

	return page.Result{
		Records: slices.Clone(s.records[start:end]),
		Total:   total,
	}, nil
}

type document struct {
	Records []page.Record `json:"records" yaml:"records" toml:"records"`
}

// ReadFile decodes the records in one file, choosing the format by extension.
func ReadFile(path string) ([]page.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	recs, err := decode(strings.ToLower(filepath.Ext(path)), data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return recs, nil
}

func decode(ext string, data []byte) ([]page.Record, error) {
	switch ext {
	case ".json":
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
			var list []page.Record
			err := json.Unmarshal(trimmed, &list)
			return list, err
		}
		var doc document
		err := json.Unmarshal(data, &doc)
		return doc.Records, err
	case ".yaml", ".yml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		if len(node.Content) == 0 {
			return nil, nil
		}
		if node.Content[0].Kind == yaml.SequenceNode {
			var list []page.Record
			err := node.Decode(&list)
			return list, err
		}
		var doc document
		err := node.Decode(&doc)
		return doc.Records, err
	case ".toml":
		var doc document
		err := toml.Unmarshal(data, &doc)
		return doc.Records, err
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
}
