package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/pagepick/internal/core/selection"
	"github.com/hay-kot/pagepick/internal/core/styles"
	"github.com/hay-kot/pagepick/internal/core/validate"
	"github.com/hay-kot/pagepick/internal/tui/components"
	"github.com/hay-kot/pagepick/internal/tui/components/form"
)

// BulkModal collects the count for a "select next N" request starting at a
// fixed position.
type BulkModal struct {
	start    selection.Position
	maxCount int
	field    *form.TextField
	count    int
	done     bool
	canceled bool
}

// NewBulkModal creates a bulk input modal anchored at start. maxCount bounds
// the accepted count; zero or less means unbounded.
func NewBulkModal(start selection.Position, maxCount int) *BulkModal {
	field := form.NewTextField("Count", "e.g. 50", "").WithValidation(form.FieldValidation{
		Required: true,
		Check: func(s string) error {
			_, err := validate.BulkCount(s, maxCount)
			return err
		},
	})

	return &BulkModal{
		start:    start,
		maxCount: maxCount,
		field:    field,
	}
}

// Init focuses the count input.
func (b *BulkModal) Init() tea.Cmd {
	return b.field.Focus()
}

// Update routes a message to the modal. Enter submits when the count is
// valid; esc cancels.
func (b *BulkModal) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			b.canceled = true
			return nil
		case keyEnter:
			b.submit()
			return nil
		}
	}

	_, cmd := b.field.Update(msg)
	return cmd
}

func (b *BulkModal) submit() {
	if !b.field.Validate() {
		return
	}
	n, err := validate.BulkCount(b.field.Value(), b.maxCount)
	if err != nil {
		return
	}
	b.count = n
	b.done = true
}

// Start returns the first position the request covers.
func (b *BulkModal) Start() selection.Position { return b.start }

// Count returns the accepted count once Submitted is true.
func (b *BulkModal) Count() int { return b.count }

// Submitted reports whether a valid count was entered.
func (b *BulkModal) Submitted() bool { return b.done }

// Canceled reports whether the modal was dismissed.
func (b *BulkModal) Canceled() bool { return b.canceled }

// View renders the modal box.
func (b *BulkModal) View() string {
	desc := fmt.Sprintf("Select positions starting at #%d", b.start)
	if b.maxCount > 0 {
		desc += fmt.Sprintf(" (max %d)", b.maxCount)
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render("Select next N"),
		styles.FormHelpStyle.Render(desc),
		"",
		b.field.View(),
		styles.ModalHelpStyle.Render("enter select  esc cancel"),
	)
	return styles.ModalStyle.Render(content)
}

// Overlay centers the modal over a width x height screen.
func (b *BulkModal) Overlay(width, height int) string {
	return components.Center(b.View(), width, height)
}
