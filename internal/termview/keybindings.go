package termview

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyHandler func(*Model, tea.KeyMsg) (*Model, tea.Cmd)

// KeyBinding is a key binding with the handler it dispatches to.
type KeyBinding struct {
	key.Binding
	Handler keyHandler
}

// BindingCategory groups related key bindings for the help view.
type BindingCategory struct {
	Name     string
	Bindings []KeyBinding
}

// KeyBindings returns every key binding of the viewer.
func KeyBindings() []BindingCategory {
	return []BindingCategory{
		{
			Name: "Navigation",
			Bindings: []KeyBinding{
				{
					Binding: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "pan left")),
					Handler: (*Model).handlePanLeft,
				},
				{
					Binding: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "pan right")),
					Handler: (*Model).handlePanRight,
				},
				{
					Binding: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
					Handler: (*Model).handleZoomIn,
				},
				{
					Binding: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
					Handler: (*Model).handleZoomOut,
				},
				{
					Binding: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next chart")),
					Handler: (*Model).handleNextChart,
				},
			},
		},
		{
			Name: "Display",
			Bindings: []KeyBinding{
				{
					Binding: key.NewBinding(
						key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
						key.WithHelp("1-9", "toggle series"),
					),
					Handler: (*Model).handleToggleSeries,
				},
				{
					Binding: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "night mode")),
					Handler: (*Model).handleToggleNight,
				},
				{
					Binding: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),
					Handler: (*Model).handleClearSelection,
				},
			},
		},
		{
			Name: "General",
			Bindings: []KeyBinding{
				{
					Binding: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more help")),
					Handler: (*Model).handleToggleHelp,
				},
				{
					Binding: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
					Handler: (*Model).handleQuit,
				},
			},
		},
	}
}

// buildKeyMap indexes handlers by key.
func buildKeyMap(categories []BindingCategory) map[string]keyHandler {
	keyMap := make(map[string]keyHandler)
	for _, category := range categories {
		for _, binding := range category.Bindings {
			for _, k := range binding.Keys() {
				keyMap[k] = binding.Handler
			}
		}
	}
	return keyMap
}

// helpKeys adapts the binding categories to the help view.
type helpKeys []BindingCategory

var _ help.KeyMap = helpKeys(nil)

func (h helpKeys) ShortHelp() []key.Binding {
	var short []key.Binding
	for _, category := range h {
		if len(category.Bindings) > 0 {
			short = append(short, category.Bindings[0].Binding)
		}
	}
	return short
}

func (h helpKeys) FullHelp() [][]key.Binding {
	full := make([][]key.Binding, 0, len(h))
	for _, category := range h {
		column := make([]key.Binding, 0, len(category.Bindings))
		for _, binding := range category.Bindings {
			column = append(column, binding.Binding)
		}
		full = append(full, column)
	}
	return full
}
