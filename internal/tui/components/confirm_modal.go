package components

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/pagepick/internal/core/styles"
)

// ConfirmModal is a yes/no dialog with Confirm and Cancel buttons.
type ConfirmModal struct {
	title           string
	message         string
	confirmSelected bool
	confirmed       bool
	cancelled       bool
}

// NewConfirmModal creates a confirmation modal with Confirm preselected.
func NewConfirmModal(title, message string) ConfirmModal {
	return ConfirmModal{
		title:           title,
		message:         message,
		confirmSelected: true,
	}
}

// Update handles input for the confirmation modal.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "left", "right", "tab", "h", "l":
		m.confirmSelected = !m.confirmSelected
	case "enter":
		if m.confirmSelected {
			m.confirmed = true
		} else {
			m.cancelled = true
		}
	case "y", "Y":
		m.confirmed = true
	case "n", "N", "esc":
		m.cancelled = true
	}

	return m, nil
}

// View renders the dialog box.
func (m ConfirmModal) View() string {
	confirmBtn, cancelBtn := styles.ModalButtonSelectedStyle, styles.ModalButtonStyle
	if !m.confirmSelected {
		confirmBtn, cancelBtn = cancelBtn, confirmBtn
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		confirmBtn.Render("Confirm"), "  ", cancelBtn.Render("Cancel"))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		"",
		m.message,
		lipgloss.NewStyle().MarginTop(1).Render(buttons),
		styles.ModalHelpStyle.Render("←/→ select  enter confirm  esc cancel"),
	)

	return styles.ModalStyle.Render(content)
}

// Overlay centers the dialog over a width x height screen.
func (m ConfirmModal) Overlay(width, height int) string {
	return Center(m.View(), width, height)
}

// Confirmed returns true if user confirmed.
func (m ConfirmModal) Confirmed() bool {
	return m.confirmed
}

// Cancelled returns true if user cancelled.
func (m ConfirmModal) Cancelled() bool {
	return m.cancelled
}

// Done reports whether the user answered.
func (m ConfirmModal) Done() bool {
	return m.confirmed || m.cancelled
}
