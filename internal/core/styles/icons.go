package styles

// Row markers.
var (
	IconChecked   = "[x]"
	IconUnchecked = "[ ]"
	IconCursor    = ">"
	IconRange     = "…"
)
