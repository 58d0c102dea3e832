// Package screen enumerates the mutually exclusive top-level views.
package screen

import "strings"

// Screen identifies one top-level view. Exactly one is active at a time.
type Screen int

const (
	Welcome Screen = iota
	TextEditor
	FileManager
	Calculator
	SiteLauncher
	MediaPlayer
	PDFReader
	CommunicationAid
	AccessibilitySettings
	Help
)

type info struct {
	id    string
	title string
	// command is the shortcut-map entry that opens this screen.
	command string
	// digit is the Ctrl+digit binding, 0 when unbound.
	digit rune
}

var table = [...]info{
	Welcome:               {id: "welcome", title: "Main Menu"},
	TextEditor:            {id: "text-editor", title: "Text Editor", command: "open-editor", digit: '1'},
	FileManager:           {id: "file-manager", title: "File Manager", command: "open-file-manager", digit: '2'},
	Calculator:            {id: "calculator", title: "Calculator", command: "open-calculator", digit: '3'},
	SiteLauncher:          {id: "site-launcher", title: "Websites", command: "open-sites", digit: '4'},
	MediaPlayer:           {id: "media-player", title: "Media Player", command: "open-media", digit: '5'},
	PDFReader:             {id: "pdf-reader", title: "PDF Reader", command: "open-pdf", digit: '6'},
	CommunicationAid:      {id: "communication-aid", title: "Communication Board", command: "open-communication", digit: '7'},
	AccessibilitySettings: {id: "accessibility-settings", title: "Accessibility Settings", command: "open-settings", digit: '8'},
	Help:                  {id: "help", title: "Help", command: "open-help"},
}

// All returns every screen in menu order.
func All() []Screen {
	out := make([]Screen, 0, len(table))
	for i := range table {
		out = append(out, Screen(i))
	}
	return out
}

// Valid reports whether s is a known screen.
func (s Screen) Valid() bool { return s >= 0 && int(s) < len(table) }

// String returns the stable identifier, e.g. "text-editor".
func (s Screen) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return table[s].id
}

// Title is the human-readable name shown in headers and announcements.
func (s Screen) Title() string {
	if !s.Valid() {
		return ""
	}
	return table[s].title
}

// Command is the logical shortcut command that opens s, empty for welcome.
func (s Screen) Command() string {
	if !s.Valid() {
		return ""
	}
	return table[s].command
}

// Parse resolves an identifier or title, case-insensitively. "home" is accepted for welcome.
func Parse(v string) (Screen, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "home" || v == "menu" {
		return Welcome, true
	}
	for i, in := range table {
		if v == in.id || v == strings.ToLower(in.title) {
			return Screen(i), true
		}
	}
	return Welcome, false
}

// ForDigit returns the screen bound to Ctrl+digit.
func ForDigit(d rune) (Screen, bool) {
	for i, in := range table {
		if in.digit != 0 && in.digit == d {
			return Screen(i), true
		}
	}
	return Welcome, false
}

// ForCommand returns the screen opened by a shortcut command name.
func ForCommand(cmd string) (Screen, bool) {
	for i, in := range table {
		if in.command != "" && in.command == cmd {
			return Screen(i), true
		}
	}
	return Welcome, false
}

// Commands lists the shortcut commands in menu order.
func Commands() []string {
	out := make([]string, 0, len(table))
	for _, in := range table {
		if in.command != "" {
			out = append(out, in.command)
		}
	}
	return out
}
