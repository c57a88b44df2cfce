package form

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldValidation_ValidateText(t *testing.T) {
	even := func(s string) error {
		if len(s)%2 != 0 {
			return errors.New("odd length")
		}
		return nil
	}

	tests := []struct {
		name  string
		v     FieldValidation
		value string
		want  string
	}{
		{"no rules, empty", FieldValidation{}, "", ""},
		{"no rules, non-empty", FieldValidation{}, "hello", ""},
		{"required, empty", FieldValidation{Required: true}, "", "required"},
		{"required, whitespace", FieldValidation{Required: true}, "   ", "required"},
		{"required, non-empty", FieldValidation{Required: true}, "hello", ""},
		{"max_length, too long", FieldValidation{MaxLength: 3}, "hello", "maximum 3 characters"},
		{"max_length, exact", FieldValidation{MaxLength: 5}, "hello", ""},
		{"pattern, matches", FieldValidation{Pattern: regexp.MustCompile(`^\d+$`)}, "123", ""},
		{"pattern, no match", FieldValidation{Pattern: regexp.MustCompile(`^\d+$`)}, "abc", "must match pattern: ^\\d+$"},
		{"pattern, empty skips", FieldValidation{Pattern: regexp.MustCompile(`^\d+$`)}, "", ""},
		{"check, fails", FieldValidation{Check: even}, "abc", "odd length"},
		{"check, passes", FieldValidation{Check: even}, "ab", ""},
		{"check, empty skips", FieldValidation{Check: even}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.ValidateText(tt.value)
			assert.Equal(t, tt.want, got)
		})
	}
}
