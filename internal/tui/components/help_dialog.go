// Package components provides reusable TUI components.
package components

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/pagepick/internal/core/styles"
)

// HelpEntry represents a single keyboard shortcut entry.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpDialogSection groups related help entries under a title.
type HelpDialogSection struct {
	Title   string
	Entries []HelpEntry
}

// HelpDialog displays all available keyboard shortcuts.
type HelpDialog struct {
	title    string
	sections []HelpDialogSection
}

// NewHelpDialog creates a new help dialog with the given sections.
func NewHelpDialog(title string, sections []HelpDialogSection) *HelpDialog {
	return &HelpDialog{
		title:    title,
		sections: sections,
	}
}

// View renders the help dialog.
func (h *HelpDialog) View() string {
	keyWidth := 0
	for _, section := range h.sections {
		for _, entry := range section.Entries {
			keyWidth = max(keyWidth, lipgloss.Width(entry.Key))
		}
	}
	keyWidth += 2

	var lines []string
	for i, section := range h.sections {
		if section.Title != "" {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, styles.FormTitleStyle.Render(section.Title))
			lines = append(lines, styles.DividerStyle.Render(strings.Repeat("─", 25)))
		}

		for _, entry := range section.Entries {
			lines = append(lines,
				styles.HeaderStyle.Render(Fit(entry.Key, keyWidth))+styles.RowStyle.Render(entry.Desc))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(h.title),
		"",
		strings.Join(lines, "\n"),
		styles.ModalHelpStyle.Render("esc/? close"),
	)

	return styles.ModalStyle.Render(content)
}

// Overlay centers the dialog over a width x height screen.
func (h *HelpDialog) Overlay(width, height int) string {
	return Center(h.View(), width, height)
}
