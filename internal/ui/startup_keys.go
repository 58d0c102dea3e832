package ui

import (
	"strings"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys simulates startup keypresses (Vim-like tokens and literal text).
// It mutates the provided model in place. Commands produced by the keys stay
// queued and are returned by Init.
func ApplyStartupKeys(m *Model, keys []string) {
	if len(keys) == 0 || m == nil {
		return
	}
	press := func(msg tea.KeyPressMsg) {
		_, cmd := m.Update(msg)
		m.push(cmd)
	}
	for _, raw := range keys {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		// Leading backslash forces literal text (e.g., "\\<f12>").
		if strings.HasPrefix(token, `\`) {
			for _, r := range strings.TrimPrefix(token, `\`) {
				press(tea.KeyPressMsg{Code: r, Text: string(r)})
			}
			continue
		}
		for _, segment := range parseTokenSegments(token) {
			if !segment.isVimKey {
				for _, r := range segment.text {
					press(tea.KeyPressMsg{Code: r, Text: string(r)})
				}
				continue
			}
			if msg, ok := keyMsgFromToken(segment.text); ok {
				press(msg)
			}
		}
	}
}

// tokenSegment represents a parsed segment of a token (either a vim-style key or literal text)
type tokenSegment struct {
	text     string
	isVimKey bool
}

// parseTokenSegments splits a token into segments of vim-style keys and literal text.
// Example: "<C-3>12" -> [segment{text: "<C-3>", isVimKey: true}, segment{text: "12", isVimKey: false}]
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token
	for len(remaining) > 0 {
		startIdx := strings.Index(remaining, "<")
		if startIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if startIdx > 0 {
			segments = append(segments, tokenSegment{text: remaining[:startIdx]})
		}
		endIdx := strings.Index(remaining[startIdx:], ">")
		if endIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining[startIdx:]})
			break
		}
		segments = append(segments, tokenSegment{text: remaining[startIdx : startIdx+endIdx+1], isVimKey: true})
		remaining = remaining[startIdx+endIdx+1:]
	}
	return segments
}

var namedKeys = map[string]rune{
	"esc":       tea.KeyEscape,
	"escape":    tea.KeyEscape,
	"c-[":       tea.KeyEscape,
	"cr":        tea.KeyEnter,
	"enter":     tea.KeyEnter,
	"return":    tea.KeyEnter,
	"tab":       tea.KeyTab,
	"bs":        tea.KeyBackspace,
	"backspace": tea.KeyBackspace,
	"del":       tea.KeyDelete,
	"delete":    tea.KeyDelete,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"pgup":      tea.KeyPgUp,
	"pgdn":      tea.KeyPgDown,
	"pgdown":    tea.KeyPgDown,
	"f1":        tea.KeyF1,
	"f2":        tea.KeyF2,
	"f3":        tea.KeyF3,
	"f4":        tea.KeyF4,
	"f5":        tea.KeyF5,
	"f6":        tea.KeyF6,
	"f7":        tea.KeyF7,
	"f8":        tea.KeyF8,
	"f9":        tea.KeyF9,
	"f10":       tea.KeyF10,
	"f11":       tea.KeyF11,
	"f12":       tea.KeyF12,
}

// keyMsgFromToken parses a Vim-like token into a key message.
// Examples: "<Esc>", "<CR>", "<Space>", "<S-Tab>", "<C-s>", "<C-3>", "<C-S-d>", "<F12>".
func keyMsgFromToken(token string) (tea.KeyPressMsg, bool) {
	if !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") {
		return tea.KeyPressMsg{}, false
	}
	inner := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">"))
	if inner == "space" {
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}, true
	}
	if code, ok := namedKeys[inner]; ok {
		return tea.KeyPressMsg{Code: code}, true
	}
	var mod tea.KeyMod
	for {
		switch {
		case strings.HasPrefix(inner, "c-"):
			mod |= tea.ModCtrl
			inner = inner[2:]
			continue
		case strings.HasPrefix(inner, "s-"):
			mod |= tea.ModShift
			inner = inner[2:]
			continue
		case strings.HasPrefix(inner, "a-"), strings.HasPrefix(inner, "m-"):
			mod |= tea.ModAlt
			inner = inner[2:]
			continue
		}
		break
	}
	if mod == 0 {
		return tea.KeyPressMsg{}, false
	}
	if code, ok := namedKeys[inner]; ok {
		return tea.KeyPressMsg{Code: code, Mod: mod}, true
	}
	if inner == "space" {
		return tea.KeyPressMsg{Code: tea.KeySpace, Mod: mod}, true
	}
	if r, size := utf8.DecodeRuneInString(inner); size == len(inner) && r != utf8.RuneError {
		return tea.KeyPressMsg{Code: r, Mod: mod}, true
	}
	return tea.KeyPressMsg{}, false
}
