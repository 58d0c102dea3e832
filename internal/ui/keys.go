package ui

import (
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
)

// globalKeys are the bindings that work on every screen.
type globalKeys struct {
	Quit  key.Binding
	Debug key.Binding
	Scan  key.Binding
	Help  key.Binding
	Voice key.Binding
	Back  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Pick  key.Binding
	Pause key.Binding
}

func newGlobalKeys() globalKeys {
	return globalKeys{
		Quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Debug: key.NewBinding(key.WithKeys("ctrl+shift+d", "f12"), key.WithHelp("f12", "debug bar")),
		Scan:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "toggle scanning")),
		Help:  key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Voice: key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "voice command")),
		Back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "main menu")),
		Next:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next control")),
		Prev:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous control")),
		Pick:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate")),
		Pause: key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "pause scanning")),
	}
}

func (k globalKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scan, k.Help, k.Back, k.Quit}
}

func (k globalKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Scan, k.Pick, k.Pause, k.Back},
		{k.Next, k.Prev, k.Help, k.Voice},
		{k.Debug, k.Quit},
	}
}

// keyHelpLines renders the key reference shown under the help document.
func keyHelpLines(keys globalKeys, st styles, width int) []string {
	h := help.New()
	h.SetWidth(width)
	h.Styles = help.Styles{
		Ellipsis:       st.muted(),
		ShortKey:       st.title(),
		ShortDesc:      st.text(),
		ShortSeparator: st.muted(),
		FullKey:        st.title(),
		FullDesc:       st.text(),
		FullSeparator:  st.muted(),
	}
	var out []string
	if width >= 60 {
		out = strings.Split(h.FullHelpView(keys.FullHelp()), "\n")
	} else {
		out = []string{h.ShortHelpView(keys.ShortHelp())}
	}
	return append([]string{st.title().Render("Keys")}, out...)
}
