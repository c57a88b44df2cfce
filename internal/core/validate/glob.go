package validate

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoFiles is returned when a file pattern matches nothing.
var ErrNoFiles = errors.New("no files match pattern")

// MatchFiles returns the regular files pattern selects, in sorted order. The
// pattern uses doublestar syntax, so "data/**/*.yaml" walks subdirectories.
func MatchFiles(pattern string) ([]string, error) {
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, pattern)
	}

	slices.Sort(matches)
	return matches, nil
}
