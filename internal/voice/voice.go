// Package voice maps recognized speech to shell commands.
package voice

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Command binds spoken keywords to an action name such as "screen:calculator"
// or "scan:toggle".
type Command struct {
	Action   string   `yaml:"action"`
	Keywords []string `yaml:"keywords"`
}

// Matcher resolves utterances against an ordered command list. The first
// command with a keyword contained in the utterance wins.
type Matcher struct {
	commands []Command
}

// NewMatcher normalizes keywords once.
func NewMatcher(commands []Command) *Matcher {
	m := &Matcher{commands: make([]Command, 0, len(commands))}
	for _, c := range commands {
		nc := Command{Action: c.Action}
		for _, k := range c.Keywords {
			if k = Normalize(k); k != "" {
				nc.Keywords = append(nc.Keywords, k)
			}
		}
		if nc.Action != "" && len(nc.Keywords) > 0 {
			m.commands = append(m.commands, nc)
		}
	}
	return m
}

// Match returns the action for text.
func (m *Matcher) Match(text string) (string, bool) {
	words := " " + Normalize(text) + " "
	for _, c := range m.commands {
		for _, k := range c.Keywords {
			if strings.Contains(words, " "+k+" ") {
				return c.Action, true
			}
		}
	}
	return "", false
}

// Normalize lowercases, strips diacritics and punctuation and collapses spaces,
// so "Calculadora!" and "calculadora" compare equal.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(strings.ToLower(s)) {
		switch {
		case r >= 0x300 && r <= 0x36f:
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r > 0x7f:
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
