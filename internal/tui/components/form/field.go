// Package form provides input fields for modal prompts.
package form

import tea "charm.land/bubbletea/v2"

// Field is the interface implemented by form fields.
type Field interface {
	Update(msg tea.Msg) (Field, tea.Cmd)
	View() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Value() string
	Label() string
	// Validate checks the current value and records any error for display.
	Validate() bool
}
