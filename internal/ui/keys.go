package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap is the globe's keyboard layout.
type keyMap struct {
	Up, Down, Left, Right key.Binding
	ZoomIn, ZoomOut       key.Binding
	Reset                 key.Binding
	Next, Prev            key.Binding
	Clear                 key.Binding
	Labels                key.Binding
	Stars                 key.Binding
	Animate               key.Binding
	Help                  key.Binding
	Quit                  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "tilt up")),
		Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "tilt down")),
		Left:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "spin left")),
		Right:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "spin right")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Next:    key.NewBinding(key.WithKeys("n", "tab"), key.WithHelp("n", "next site")),
		Prev:    key.NewBinding(key.WithKeys("p", "shift+tab"), key.WithHelp("p", "prev site")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Labels:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "labels")),
		Stars:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "stars")),
		Animate: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "animate")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.ZoomIn, k.Next, k.Reset, k.Labels, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.ZoomIn, k.ZoomOut, k.Reset},
		{k.Next, k.Prev, k.Clear},
		{k.Labels, k.Stars, k.Animate},
		{k.Help, k.Quit},
	}
}
