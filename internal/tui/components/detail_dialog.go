package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/hay-kot/pagepick/internal/core/logging"
	"github.com/hay-kot/pagepick/internal/core/styles"
)

const (
	detailMaxWidth  = 90
	detailMaxHeight = 30
	detailMargin    = 4
	detailChrome    = 6 // border + padding + title + help
)

// DetailDialog shows glamour-rendered markdown in a scrollable box.
type DetailDialog struct {
	title    string
	markdown string
	width    int
	height   int
	viewport viewport.Model
}

// NewDetailDialog renders markdown with the palette's glamour style, sized to
// fit a screen of width x height.
func NewDetailDialog(title, markdown string, p styles.Palette, width, height int) *DetailDialog {
	w := max(min(width-detailMargin, detailMaxWidth), 20)
	h := max(min(height-detailMargin, detailMaxHeight), detailChrome+1)

	d := &DetailDialog{
		title:    title,
		markdown: markdown,
		width:    w,
		height:   h,
		viewport: viewport.New(
			viewport.WithWidth(w-4),
			viewport.WithHeight(h-detailChrome),
		),
	}
	d.viewport.SetContent(renderMarkdown(markdown, p, w-4))
	return d
}

func renderMarkdown(md string, p styles.Palette, width int) string {
	style := styles.GlamourStyle(p)
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	l := logging.Component("tui")

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		l.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		return md
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		l.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		return md
	}

	return strings.Trim(rendered, "\n")
}

// Markdown returns the unrendered source.
func (d *DetailDialog) Markdown() string {
	return d.markdown
}

// Update forwards scrolling keys to the viewport.
func (d *DetailDialog) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

// View renders the dialog box.
func (d *DetailDialog) View() string {
	title := d.title
	if d.viewport.TotalLineCount() > d.viewport.VisibleLineCount() {
		title += styles.HeaderMetaStyle.Render(fmt.Sprintf(" (%.0f%%)", d.viewport.ScrollPercent()*100))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(title),
		d.viewport.View(),
		styles.ModalHelpStyle.Render("↑/↓ scroll  esc close"),
	)

	return styles.ModalStyle.Width(d.width).Render(content)
}

// Overlay centers the dialog over a width x height screen.
func (d *DetailDialog) Overlay(width, height int) string {
	return Center(d.View(), width, height)
}
