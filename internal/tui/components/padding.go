package components

import (
	"strings"
	"sync"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const maxCachedPad = 200

// paddings caches space runs up to maxCachedPad, built on first use.
var paddings = sync.OnceValue(func() [maxCachedPad + 1]string {
	var cache [maxCachedPad + 1]string
	for i := range cache {
		cache[i] = strings.Repeat(" ", i)
	}
	return cache
})

// Pad returns a string of n spaces.
func Pad(n int) string {
	if n <= 0 {
		return ""
	}
	if n <= maxCachedPad {
		return paddings()[n]
	}
	return strings.Repeat(" ", n)
}

// Fit truncates s to width display cells, or pads it with spaces to exactly
// width.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w > width {
		return ansi.Truncate(s, width, "…")
	}
	return s + Pad(width-w)
}

// Center places content in the middle of a width x height area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
