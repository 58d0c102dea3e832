package ui

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestGlobalKeys_Match(t *testing.T) {
	k := newGlobalKeys()
	tests := []struct {
		name string
		msg  tea.KeyPressMsg
		b    key.Binding
	}{
		{"quit", ctrlKey('c'), k.Quit},
		{"scan", ctrlKey('s'), k.Scan},
		{"help", namedKey(tea.KeyF1), k.Help},
		{"voice", namedKey(tea.KeyF2), k.Voice},
		{"debug f12", namedKey(tea.KeyF12), k.Debug},
		{"debug chord", tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl | tea.ModShift}, k.Debug},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, key.Matches(tt.msg, tt.b))
		})
	}
	assert.False(t, key.Matches(ctrlKey('d'), k.Debug))
}

func TestKeyHelpLines(t *testing.T) {
	k := newGlobalKeys()

	full := ansi.Strip(strings.Join(keyHelpLines(k, styles{noColor: true}, 100), "\n"))
	assert.True(t, strings.HasPrefix(full, "Keys\n"))
	assert.Contains(t, full, "ctrl+s")
	assert.Contains(t, full, "toggle scanning")
	assert.Contains(t, full, "voice command")

	short := keyHelpLines(k, styles{noColor: true}, 45)
	assert.Len(t, short, 2)
	assert.LessOrEqual(t, ansi.StringWidth(short[1]), 45)
	assert.Contains(t, ansi.Strip(short[1]), "…")
}

func TestHelpScreen_ListsKeys(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, namedKey(tea.KeyF1))
	m.View()

	doc := ansi.Strip(strings.Join(m.helpDoc, "\n"))
	assert.Contains(t, doc, "toggle scanning")
}
