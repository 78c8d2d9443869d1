package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	upload   key.Binding
	sort     key.Binding
	open     key.Binding
	download key.Binding
	restart  key.Binding
	quit     key.Binding
	exit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		upload:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "upload")),
		sort:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "sort order")),
		open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		download: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download")),
		restart:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "start new")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		exit:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.upload, k.sort, k.exit},
		{k.open, k.download, k.restart, k.quit},
	}
}
