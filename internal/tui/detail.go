package tui

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/hay-kot/pagepick/internal/core/page"
	"github.com/hay-kot/pagepick/internal/core/selection"
)

// recordMarkdown renders a row as a markdown document for the detail dialog.
func recordMarkdown(row selection.Row[page.Record]) string {
	var b strings.Builder

	title := row.Payload.Title
	if title == "" {
		title = row.Payload.ID
	}
	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(title))

	state := "not selected"
	if row.Selected {
		state = "**selected**"
	}
	fmt.Fprintf(&b, "`%s` · position #%d · %s\n", row.Payload.ID, row.Position, state)

	if len(row.Payload.Fields) == 0 {
		return b.String()
	}

	b.WriteString("\n| Field | Value |\n| --- | --- |\n")
	for _, k := range slices.Sorted(maps.Keys(row.Payload.Fields)) {
		fmt.Fprintf(&b, "| %s | %s |\n", escapeMarkdown(k), escapeMarkdown(formatValue(row.Payload.Fields[k])))
	}
	return b.String()
}

func formatValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
