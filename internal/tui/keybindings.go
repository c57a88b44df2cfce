package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/hay-kot/pagepick/internal/tui/components"
)

// KeyMap holds the browser key bindings.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Bulk      key.Binding
	Clear     key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	Reload    key.Binding
	Detail    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default browser bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys("space", "x"), key.WithHelp("space", "toggle row")),
		ToggleAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle page")),
		Bulk:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "select next N")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear selection")),
		NextPage:  key.NewBinding(key.WithKeys("n", "right", "l"), key.WithHelp("n/→", "next page")),
		PrevPage:  key.NewBinding(key.WithKeys("p", "left", "h"), key.WithHelp("p/←", "previous page")),
		FirstPage: key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first page")),
		LastPage:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last page")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Detail:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Bulk, k.NextPage, k.PrevPage, k.Help, k.Quit}
}

// HelpSections groups the bindings for the help dialog.
func (k KeyMap) HelpSections() []components.HelpDialogSection {
	return []components.HelpDialogSection{
		{Title: "Selection", Entries: helpEntries(k.Toggle, k.ToggleAll, k.Bulk, k.Clear)},
		{Title: "Navigation", Entries: helpEntries(k.Up, k.Down, k.NextPage, k.PrevPage, k.FirstPage, k.LastPage)},
		{Title: "General", Entries: helpEntries(k.Detail, k.Reload, k.Help, k.Quit)},
	}
}

func helpEntries(bindings ...key.Binding) []components.HelpEntry {
	entries := make([]components.HelpEntry, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		entries = append(entries, components.HelpEntry{Key: h.Key, Desc: h.Desc})
	}
	return entries
}
