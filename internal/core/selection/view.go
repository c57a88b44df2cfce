package selection

// Entry is an item of the current page annotated with its global position.
type Entry[T any] struct {
	Position Position
	Payload  T
}

// Row is an entry of a derived page view.
type Row[T any] struct {
	Position Position
	Payload  T
	Selected bool
}

// View is the ordered, derived selection state of one page. It is rebuilt
// whenever the page or the selection changes and is never written back.
type View[T any] []Row[T]

// DeriveView annotates entries with their membership in set. It does not
// modify set and runs in time linear in len(entries).
func DeriveView[T any](entries []Entry[T], set *Set) View[T] {
	view := make(View[T], len(entries))

	set.mu.RLock()
	defer set.mu.RUnlock()

	for i, e := range entries {
		_, ok := set.positions[e.Position]
		view[i] = Row[T]{
			Position: e.Position,
			Payload:  e.Payload,
			Selected: ok,
		}
	}
	return view
}

// Positions returns the positions of every row, in page order.
func (v View[T]) Positions() []Position {
	out := make([]Position, len(v))
	for i, r := range v {
		out[i] = r.Position
	}
	return out
}

// SelectedPositions returns the positions of the selected rows, in page order.
func (v View[T]) SelectedPositions() []Position {
	var out []Position
	for _, r := range v {
		if r.Selected {
			out = append(out, r.Position)
		}
	}
	return out
}

// SelectedCount returns the number of selected rows.
func (v View[T]) SelectedCount() int {
	n := 0
	for _, r := range v {
		if r.Selected {
			n++
		}
	}
	return n
}

// Toggled returns the selected subset of the page after flipping the row at
// index i. An out of range index returns the current subset unchanged.
func (v View[T]) Toggled(i int) []Position {
	var out []Position
	for j, r := range v {
		sel := r.Selected
		if j == i {
			sel = !sel
		}
		if sel {
			out = append(out, r.Position)
		}
	}
	return out
}

// AllToggled returns the subset that results from a "select all" on the page:
// every row when any row is unselected, otherwise none.
// An empty page yields nil.
func (v View[T]) AllToggled() []Position {
	if len(v) == 0 || v.SelectedCount() == len(v) {
		return nil
	}
	return v.Positions()
}
