package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/easyface/easyface/internal/screen"
)

// statusLine is the message shown in the bottom bar. id ties a pending
// revert to the message it was scheduled for.
type statusLine struct {
	id    int
	text  string
	isErr bool
}

type statusRevertMsg struct{ ID int }

// setStatus shows msg and schedules the revert to the default line.
func (m *Model) setStatus(msg string, isErr bool) {
	id := m.status.id + 1
	m.status = statusLine{id: id, text: msg, isErr: isErr}
	m.push(m.sched.After(m.statusRevert(), statusRevertMsg{ID: id}))
}

func (m *Model) defaultStatus() string {
	if m.scanMode {
		return "Scan mode: Enter selects, Space pauses, Esc goes home"
	}
	if m.current == screen.Welcome {
		return "Ctrl+S scan mode · Ctrl+1..8 open tools · F1 help"
	}
	return m.current.Title() + " · Esc returns to the menu"
}

func (m *Model) renderStatus(width int) string {
	text := strings.ReplaceAll(m.status.text, "\n", " ")
	text = runewidth.Truncate(" "+text, width, "…")
	return m.styles().status(m.status.isErr).Render(runewidth.FillRight(text, width))
}
