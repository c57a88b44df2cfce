package selection

import (
	"strconv"
	"strings"
)

// Range is an inclusive run of consecutive positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Len returns the number of positions in the range.
func (r Range) Len() int {
	return int(r.End-r.Start) + 1
}

func (r Range) String() string {
	if r.Start == r.End {
		return strconv.Itoa(int(r.Start))
	}
	return strconv.Itoa(int(r.Start)) + "-" + strconv.Itoa(int(r.End))
}

// Compact folds ascending, de-duplicated positions into runs.
func Compact(sorted []Position) []Range {
	if len(sorted) == 0 {
		return nil
	}

	ranges := []Range{{Start: sorted[0], End: sorted[0]}}
	for _, p := range sorted[1:] {
		last := &ranges[len(ranges)-1]
		if p == last.End+1 {
			last.End = p
			continue
		}
		ranges = append(ranges, Range{Start: p, End: p})
	}
	return ranges
}

// FormatRanges renders ranges as "1-3, 7, 10-12".
func FormatRanges(ranges []Range) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}
