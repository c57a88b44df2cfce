package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{35, 10, 4},
		{TotalUnknown, 10, 0},
		{10, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestNewMeta(t *testing.T) {
	t.Run("known total", func(t *testing.T) {
		m := NewMeta(Request{Number: 2, Size: 10}, Result{Records: make([]Record, 10), Total: 35})

		assert.Equal(t, Meta{
			CurrentPage: 2,
			PageSize:    10,
			TotalPages:  4,
			TotalItems:  35,
			HasPrevious: true,
			HasNext:     true,
		}, m)
	})

	t.Run("last page", func(t *testing.T) {
		m := NewMeta(Request{Number: 4, Size: 10}, Result{Records: make([]Record, 5), Total: 35})
		assert.False(t, m.HasNext)
	})

	t.Run("unknown total uses page fill", func(t *testing.T) {
		full := NewMeta(Request{Number: 1, Size: 5}, Result{Records: make([]Record, 5), Total: TotalUnknown})
		short := NewMeta(Request{Number: 2, Size: 5}, Result{Records: make([]Record, 2), Total: TotalUnknown})

		assert.True(t, full.HasNext)
		assert.False(t, full.HasPrevious)
		assert.Zero(t, full.TotalPages)
		assert.False(t, short.HasNext)
	})
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 4))
	assert.Equal(t, 4, ClampPage(9, 4))
	assert.Equal(t, 3, ClampPage(3, 4))
	assert.Equal(t, 50, ClampPage(50, 0))
	assert.Equal(t, 1, ClampPage(-1, 0))
}
