// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Search submits the query. An empty query lists every document.
	Search key.Binding

	Up   key.Binding
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Cancel cancels the current operation.
	Cancel key.Binding

	// NewSearch starts a new search from results view.
	NewSearch key.Binding

	// Actions opens the action menu on a result.
	Actions key.Binding

	// SortRegion, SortSite and SortDocument sort the results by a column.
	// Pressing the same key again reverses the order.
	SortRegion   key.Binding
	SortSite     key.Binding
	SortDocument key.Binding

	// Sort groups the three sort keys for compact help.
	Sort key.Binding

	// Reindex rebuilds the index from the configured root.
	Reindex key.Binding

	// Confirm and Deny answer a yes/no prompt.
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new search"),
		),
		Actions: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "actions"),
		),
		SortRegion: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "sort region"),
		),
		SortSite: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "sort site"),
		),
		SortDocument: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "sort document"),
		),
		Sort: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1/2/3", "sort"),
		),
		Reindex: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reindex"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Back}
}

// ResultsHelp returns keybindings for the results view.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NewSearch, k.Actions, k.Sort, k.Reindex, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Search, k.NewSearch, k.Actions},
		{k.SortRegion, k.SortSite, k.SortDocument},
		{k.Reindex, k.Back, k.Cancel},
		{k.Help, k.Quit},
	}
}

// SortColumn returns the sort column bound to keyStr, if any.
func (k *KeyMap) SortColumn(keyStr string) (string, bool) {
	switch {
	case Matches(keyStr, k.SortRegion):
		return "region", true
	case Matches(keyStr, k.SortSite):
		return "site", true
	case Matches(keyStr, k.SortDocument):
		return "document", true
	default:
		return "", false
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
