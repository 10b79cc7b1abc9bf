package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	search  key.Binding
	submit  key.Binding
	add     key.Binding
	play    key.Binding
	remove  key.Binding
	skip    key.Binding
	tab     key.Binding
	dismiss key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run search")),
		add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to queue")),
		play:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play now")),
		remove:  key.NewBinding(key.WithKeys("x", "d"), key.WithHelp("x/d", "remove")),
		skip:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "skip")),
		tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.search, k.add, k.play, k.remove, k.skip, k.tab, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.tab},
		{k.search, k.submit, k.dismiss},
		{k.add, k.play, k.remove, k.skip},
		{k.quit},
	}
}
