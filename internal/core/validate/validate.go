// Package validate provides validators shared by config loading and the TUI forms.
package validate

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// BulkCount parses a "select next N" count typed by the user. The count must
// be a positive integer no larger than maxCount. A maxCount of zero or less
// disables the upper bound.
func BulkCount(input string, maxCount int) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, fmt.Errorf("count is required")
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("count must be a whole number")
	}
	if n < 1 {
		return 0, fmt.Errorf("count must be at least 1")
	}
	if maxCount > 0 && n > maxCount {
		return 0, fmt.Errorf("count must be at most %d", maxCount)
	}
	return n, nil
}

// PageSize validates a page size against the allowed bounds.
func PageSize(size, maxSize int) error {
	if size < 1 {
		return fmt.Errorf("must be at least 1")
	}
	if size > maxSize {
		return fmt.Errorf("must be at most %d", maxSize)
	}
	return nil
}

// HTTPURL validates an absolute http or https URL.
func HTTPURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("url must include a host")
	}
	return nil
}
