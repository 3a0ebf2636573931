package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	left      key.Binding
	right     key.Binding
	up        key.Binding
	down      key.Binding
	movePrev  key.Binding
	moveNext  key.Binding
	open      key.Binding
	back      key.Binding
	search    key.Binding
	reload    key.Binding
	scrollUp  key.Binding
	scrollDn  key.Binding
	toggleHlp key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev lane")),
		right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next lane")),
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		movePrev:  key.NewBinding(key.WithKeys("<", "H"), key.WithHelp("<", "move back")),
		moveNext:  key.NewBinding(key.WithKeys(">", "L"), key.WithHelp(">", "move forward")),
		open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		scrollUp:  key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll up")),
		scrollDn:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll down")),
		toggleHlp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.movePrev, k.moveNext, k.open, k.search, k.toggleHlp, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.left, k.right, k.up, k.down},
		{k.movePrev, k.moveNext, k.open, k.back},
		{k.search, k.reload, k.scrollUp, k.scrollDn},
		{k.toggleHlp, k.quit},
	}
}

// inspectorHelp lists the bindings active while the detail panel is open.
func (k keyMap) inspectorHelp() []key.Binding {
	choose := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "move to stage"))
	return []key.Binding{k.up, k.down, choose, k.scrollUp, k.scrollDn, k.back, k.quit}
}
