package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/pagepick/internal/core/selection"
	"github.com/hay-kot/pagepick/pkg/tuitest"
)

func TestBulkModal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxCount  int
		submitted bool
		count     int
	}{
		{"valid count", "15", 100, true, 15},
		{"unbounded", "500", 0, true, 500},
		{"zero rejected", "0", 100, false, 0},
		{"negative rejected", "-3", 100, false, 0},
		{"text rejected", "x", 100, false, 0},
		{"over max rejected", "101", 100, false, 0},
		{"empty rejected", "", 100, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBulkModal(21, tt.maxCount)
			b.Init()
			for _, r := range tt.input {
				b.Update(tuitest.KeyText(string(r)))
			}
			b.Update(tuitest.KeyEnter())

			assert.Equal(t, tt.submitted, b.Submitted())
			assert.Equal(t, tt.count, b.Count())
			assert.False(t, b.Canceled())
			assert.Equal(t, selection.Position(21), b.Start())
		})
	}
}

func TestBulkModal_Cancel(t *testing.T) {
	b := NewBulkModal(1, 10)
	b.Init()
	b.Update(tuitest.KeyEsc())

	assert.True(t, b.Canceled())
	assert.False(t, b.Submitted())
}

func TestBulkModal_View(t *testing.T) {
	b := NewBulkModal(41, 250)
	out := tuitest.StripANSI(b.Overlay(80, 24))

	assert.Contains(t, out, "Select next N")
	assert.Contains(t, out, "#41")
	assert.Contains(t, out, "max 250")
}
