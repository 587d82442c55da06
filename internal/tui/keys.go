package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/hay-kot/histline/internal/tui/components"
)

// keyMap holds the timeline key bindings. It satisfies help.KeyMap.
type keyMap struct {
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Left      key.Binding
	Right     key.Binding
	PageLeft  key.Binding
	PageRight key.Binding
	Start     key.Binding
	End       key.Binding
	Today     key.Binding
	Jump      key.Binding
	Scale     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "scroll left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "scroll right"),
		),
		PageLeft: key.NewBinding(
			key.WithKeys("pgup", "H"),
			key.WithHelp("pgup", "page left"),
		),
		PageRight: key.NewBinding(
			key.WithKeys("pgdown", "L"),
			key.WithHelp("pgdn", "page right"),
		),
		Start: key.NewBinding(
			key.WithKeys("home", "0"),
			key.WithHelp("home", "first year"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "$"),
			key.WithHelp("end", "last year"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Jump: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to year"),
		),
		Scale: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "set px/year"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.ZoomOut, k.Left, k.Right, k.Jump, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ZoomIn, k.ZoomOut, k.Scale},
		{k.Left, k.Right, k.PageLeft, k.PageRight},
		{k.Start, k.End, k.Today, k.Jump},
		{k.Help, k.Quit},
	}
}

// helpSections groups the bindings for the help dialog.
func (k keyMap) helpSections() []components.HelpDialogSection {
	titles := []string{"Zoom", "Scroll", "Jump", "General"}
	groups := k.FullHelp()

	sections := make([]components.HelpDialogSection, 0, len(groups))
	for i, group := range groups {
		section := components.HelpDialogSection{Title: titles[i]}
		for _, b := range group {
			h := b.Help()
			section.Entries = append(section.Entries, components.HelpEntry{Key: h.Key, Desc: h.Desc})
		}
		sections = append(sections, section)
	}
	return sections
}
