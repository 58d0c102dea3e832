package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
)

// field is a text control that takes keystrokes while it has input focus.
type field interface {
	Focus() tea.Cmd
	Blur()
	Update(msg tea.Msg) tea.Cmd
	View() string
	Value() string
	SetValue(s string)
	SetWidth(w int)
}

type areaField struct {
	ta     *textarea.Model
	height int
}

func newAreaField(placeholder string, height int) areaField {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(height)
	return areaField{ta: &ta, height: height}
}

func (f areaField) Focus() tea.Cmd { return f.ta.Focus() }
func (f areaField) Blur() { f.ta.Blur() }
func (f areaField) View() string { return f.ta.View() }
func (f areaField) Value() string { return f.ta.Value() }
func (f areaField) SetValue(s string) { f.ta.SetValue(s) }
func (f areaField) SetWidth(w int) { f.ta.SetWidth(w) }

func (f areaField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	*f.ta, cmd = f.ta.Update(msg)
	return cmd
}

type lineField struct {
	ti *textinput.Model
}

func newLineField(placeholder string) lineField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	return lineField{ti: &ti}
}

func (f lineField) Focus() tea.Cmd { return f.ti.Focus() }
func (f lineField) Blur() { f.ti.Blur() }
func (f lineField) View() string { return f.ti.View() }
func (f lineField) Value() string { return f.ti.Value() }
func (f lineField) SetValue(s string) { f.ti.SetValue(s) }
func (f lineField) SetWidth(w int) { f.ti.SetWidth(w) }

func (f lineField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	*f.ti, cmd = f.ti.Update(msg)
	return cmd
}

// focusInput gives id keyboard input. Keys reach the field until Esc or Tab.
func (m *Model) focusInput(id string) {
	f, ok := m.fields[id]
	if !ok {
		return
	}
	if m.inputFocus != "" && m.inputFocus != id {
		m.blurInput()
	}
	m.inputFocus = id
	m.focused = id
	m.push(f.Focus())
}

func (m *Model) blurInput() {
	if f, ok := m.fields[m.inputFocus]; ok {
		f.Blur()
	}
	m.inputFocus = ""
}

// fieldWidth is the inner width a framed field gets on a content pane of
// width cw.
func fieldWidth(cw int) int {
	return max(10, cw-4)
}

func (m *Model) resizeFields(cw int) {
	w := fieldWidth(cw)
	for _, f := range m.fields {
		f.SetWidth(w)
	}
}
