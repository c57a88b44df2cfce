// Package selection tracks which items of a paginated collection are selected.
//
// Items are keyed by their global position in the full collection, so a
// selection made on one page survives navigation to other pages and bulk
// ranges can cover pages that have not been fetched yet. Only selected
// positions are stored; deselecting removes the entry.
package selection

import (
	"math"
	"slices"
	"sync"
)

// Position is the 1-based rank of an item in the full collection.
type Position int

// Valid reports whether p can address an item.
func (p Position) Valid() bool {
	return p >= 1
}

// Set is a sparse set of selected positions. It is safe for concurrent use;
// every mutation runs under a single lock.
type Set struct {
	mu        sync.RWMutex
	positions map[Position]struct{}
}

// New creates an empty selection set.
func New() *Set {
	return &Set{
		positions: make(map[Position]struct{}),
	}
}

// Contains reports whether p is selected.
func (s *Set) Contains(p Position) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.positions[p]
	return ok
}

// Count returns the number of selected positions.
func (s *Set) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.positions)
}

// ApplyViewSelectionChange reconciles the selection with the selected subset
// reported for one page. Every position in pageItems is cleared first, then
// every position in selected is inserted. Positions outside pageItems are left
// alone, and applying the same arguments twice yields the same set.
func (s *Set) ApplyViewSelectionChange(pageItems, selected []Position) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range pageItems {
		delete(s.positions, p)
	}
	for _, p := range selected {
		if p.Valid() {
			s.positions[p] = struct{}{}
		}
	}
}

// ApplyBulkRange selects count consecutive positions starting at start and
// returns how many of them were not already selected. The range is defined on
// positions only, so it covers pages that were never fetched. A non-positive
// start or count is a no-op.
func (s *Set) ApplyBulkRange(start Position, count int) int {
	if !start.Valid() || count <= 0 {
		return 0
	}

	end := rangeEnd(start, count)

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for p := start; ; p++ {
		if _, ok := s.positions[p]; !ok {
			s.positions[p] = struct{}{}
			added++
		}
		if p == end {
			break
		}
	}
	return added
}

// Clear removes every selected position. The set itself stays in use.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.positions)
}

// Positions returns the selected positions in ascending order.
func (s *Set) Positions() []Position {
	s.mu.RLock()
	out := make([]Position, 0, len(s.positions))
	for p := range s.positions {
		out = append(out, p)
	}
	s.mu.RUnlock()

	slices.Sort(out)
	return out
}

// Ranges returns the selection compacted into ascending runs of consecutive
// positions.
func (s *Set) Ranges() []Range {
	return Compact(s.Positions())
}

// rangeEnd returns start+count-1, clamped to the largest position.
func rangeEnd(start Position, count int) Position {
	if count-1 > math.MaxInt-int(start) {
		return Position(math.MaxInt)
	}
	return start + Position(count-1)
}
