package store

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/easyface/easyface/internal/screen"
)

// Shortcuts maps a logical command name to a single key pressed with Ctrl.
type Shortcuts map[string]string

// Validate rejects unknown commands, keys longer than one character and
// keys claimed by two commands.
func (s Shortcuts) Validate() error {
	known := map[string]bool{}
	for _, c := range screen.Commands() {
		known[c] = true
	}
	owner := map[string]string{}
	for _, cmd := range s.Commands() {
		key := s[cmd]
		if !known[cmd] {
			return fmt.Errorf("%w: unknown shortcut command %q", ErrCorrupt, cmd)
		}
		if key == "" {
			continue
		}
		if utf8.RuneCountInString(key) != 1 {
			return fmt.Errorf("%w: shortcut for %q must be a single character, got %q", ErrCorrupt, cmd, key)
		}
		if IsReserved(key) {
			return fmt.Errorf("%w: key %q is reserved", ErrCorrupt, key)
		}
		if prev, ok := owner[key]; ok {
			return fmt.Errorf("%w: key %q bound to both %q and %q", ErrCorrupt, key, prev, cmd)
		}
		owner[key] = cmd
	}
	return nil
}

// IsReserved reports whether key is claimed by a fixed binding: Ctrl+C
// quits and Ctrl+S toggles scanning.
func IsReserved(key string) bool {
	switch strings.ToLower(key) {
	case "c", "s":
		return true
	}
	return false
}

// Lookup returns the command bound to key.
func (s Shortcuts) Lookup(key string) (string, bool) {
	for _, cmd := range s.Commands() {
		if s[cmd] != "" && s[cmd] == key {
			return cmd, true
		}
	}
	return "", false
}

// Commands returns the bound command names, sorted.
func (s Shortcuts) Commands() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (s Shortcuts) Clone() Shortcuts {
	out := make(Shortcuts, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
