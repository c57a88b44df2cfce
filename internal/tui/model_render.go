package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/pagepick/internal/core/page"
	"github.com/hay-kot/pagepick/internal/core/styles"
	"github.com/hay-kot/pagepick/internal/tui/components"
)

const (
	headerLines    = 2
	footerLines    = 2
	defaultWidth   = 80
	defaultHeight  = 24
	positionColumn = 8
)

func (m Model) screenWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

func (m Model) screenHeight() int {
	if m.height > 0 {
		return m.height
	}
	return defaultHeight
}

// bodyHeight returns the number of rows visible between header and footer.
func (m Model) bodyHeight() int {
	return max(m.screenHeight()-headerLines-footerLines, 1)
}

// View renders the TUI.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the active screen: a modal when one is open, otherwise the
// page.
func (m Model) render() string {
	if m.quitting {
		return ""
	}

	w, h := m.screenWidth(), m.screenHeight()

	var content string
	switch m.state {
	case stateBulkInput:
		content = m.bulk.Overlay(w, h)
	case stateConfirming:
		content = m.confirm.Overlay(w, h)
	case stateShowingHelp:
		content = m.help.Overlay(w, h)
	case stateShowingDetail:
		content = m.detail.Overlay(w, h)
	default:
		content = lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			m.renderBody(),
			m.renderFooter(),
		)
	}
	return content
}

func (m Model) renderHeader() string {
	w := m.screenWidth()

	pageInfo := fmt.Sprintf("Page %d", m.req.Number)
	if m.meta.TotalPages > 0 {
		pageInfo = fmt.Sprintf("Page %d/%d", m.req.Number, m.meta.TotalPages)
	}

	parts := []string{pageInfo}
	if m.meta.TotalItems >= 0 && m.loaded {
		parts = append(parts, fmt.Sprintf("%d items", m.meta.TotalItems))
	}
	parts = append(parts, fmt.Sprintf("%d selected", m.set.Count()))

	title := styles.HeaderStyle.Render("pagepick") + " " +
		styles.HeaderMetaStyle.Render(strings.Join(parts, " · "))

	rangeLine := styles.SelectionSumStyle.Render(components.Fit(m.rangesText, w))

	return lipgloss.JoinVertical(lipgloss.Left, components.Fit(title, w), rangeLine)
}

func (m Model) renderBody() string {
	rows := m.bodyHeight()
	lines := make([]string, 0, rows)

	switch {
	case !m.loaded && m.loading:
		lines = append(lines, m.spinner.View()+" loading…")
	case len(m.view) == 0:
		lines = append(lines, styles.StatusInfoStyle.Render("no records on this page"))
	default:
		end := min(m.offset+rows, len(m.view))
		for i := m.offset; i < end; i++ {
			lines = append(lines, m.renderRow(i))
		}
	}

	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(i int) string {
	row := m.view[i]
	w := m.screenWidth()

	cursor := " "
	if i == m.cursor {
		cursor = styles.IconCursor
	}
	check := styles.IconUnchecked
	if row.Selected {
		check = styles.IconChecked
	}

	prefix := cursor + " " + check + " "
	pos := styles.RowPositionStyle.Render(components.Fit("#"+strconv.Itoa(int(row.Position)), positionColumn))
	avail := max(w-lipgloss.Width(prefix)-positionColumn, 0)
	line := prefix + pos + m.renderColumns(row.Payload, avail)

	switch {
	case i == m.cursor:
		return styles.RowCursorStyle.Render(components.Fit(line, w))
	case row.Selected:
		return styles.RowSelectedStyle.Render(components.Fit(line, w))
	default:
		return styles.RowStyle.Render(components.Fit(line, w))
	}
}

// renderColumns lays the configured columns out in equal widths.
func (m Model) renderColumns(rec page.Record, width int) string {
	cols := m.cfg.TUI.Columns
	if len(cols) == 0 || width <= 0 {
		return ""
	}

	colWidth := width / len(cols)
	var b strings.Builder
	for i, col := range cols {
		cw := colWidth
		if i == len(cols)-1 {
			cw = width - colWidth*(len(cols)-1)
		}
		b.WriteString(components.Fit(columnValue(rec, col), cw))
	}
	return b.String()
}

func columnValue(rec page.Record, col string) string {
	switch col {
	case "id":
		return rec.ID
	case "title":
		return rec.Title
	}
	return formatValue(rec.Fields[col])
}

func (m Model) renderFooter() string {
	w := m.screenWidth()

	var status string
	switch {
	case m.status != "" && m.statusErr:
		status = styles.StatusErrorStyle.Render(m.status)
	case m.loading && m.loaded:
		status = m.spinner.View() + " " + styles.StatusInfoStyle.Render(fmt.Sprintf("loading page %d…", m.pending.Number))
	case m.status != "":
		status = styles.StatusInfoStyle.Render(m.status)
	}

	hints := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	help := styles.FooterStyle.Render(components.Fit(strings.Join(hints, "  "), w))

	return lipgloss.JoinVertical(lipgloss.Left, components.Fit(status, w), help)
}
