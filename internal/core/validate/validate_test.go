package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkCount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		max     int
		want    int
		wantErr bool
	}{
		{"valid", "15", 100, 15, false},
		{"surrounding space", "  7 ", 100, 7, false},
		{"at max", "100", 100, 100, false},
		{"unbounded", "999999", 0, 999999, false},
		{"empty", "", 100, 0, true},
		{"zero", "0", 100, 0, true},
		{"negative", "-4", 100, 0, true},
		{"not a number", "ten", 100, 0, true},
		{"fraction", "1.5", 100, 0, true},
		{"over max", "101", 100, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BulkCount(tt.input, tt.max)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPageSize(t *testing.T) {
	assert.NoError(t, PageSize(25, 1000))
	assert.Error(t, PageSize(0, 1000))
	assert.Error(t, PageSize(1001, 1000))
}

func TestHTTPURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://api.example.com/records", false},
		{"http://localhost:8080", false},
		{"", true},
		{"ftp://example.com", true},
		{"https://", true},
		{"not a url", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := HTTPURL(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "HTTPURL(%q) error = %v", tt.input, err)
		})
	}
}
