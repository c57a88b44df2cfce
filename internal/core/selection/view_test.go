package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveView(t *testing.T) {
	s := New()
	s.ApplyBulkRange(2, 2)

	entries := entriesFor([]Position{1, 2, 3, 4})
	view := DeriveView(entries, s)

	assert.Len(t, view, 4)
	assert.Equal(t, []bool{false, true, true, false}, []bool{
		view[0].Selected, view[1].Selected, view[2].Selected, view[3].Selected,
	})
	assert.Equal(t, "item", view[0].Payload)
	assert.Equal(t, 2, s.Count(), "deriving a view must not mutate the set")
}

func TestDeriveView_Empty(t *testing.T) {
	view := DeriveView[string](nil, New())
	assert.Empty(t, view)
	assert.Empty(t, view.Positions())
	assert.Nil(t, view.AllToggled())
}

func TestView_Toggled(t *testing.T) {
	view := View[string]{
		{Position: 11, Selected: true},
		{Position: 12},
		{Position: 13, Selected: true},
	}

	tests := []struct {
		name  string
		index int
		want  []Position
	}{
		{"select unselected row", 1, []Position{11, 12, 13}},
		{"deselect selected row", 0, []Position{13}},
		{"out of range keeps subset", 9, []Position{11, 13}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, view.Toggled(tt.index))
		})
	}
}

func TestView_AllToggled(t *testing.T) {
	partial := View[string]{{Position: 1, Selected: true}, {Position: 2}}
	assert.Equal(t, []Position{1, 2}, partial.AllToggled())

	full := View[string]{{Position: 1, Selected: true}, {Position: 2, Selected: true}}
	assert.Nil(t, full.AllToggled())
}
