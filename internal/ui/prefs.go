package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	tea "charm.land/bubbletea/v2"

	"github.com/easyface/easyface/internal/focus"
	"github.com/easyface/easyface/internal/screen"
	"github.com/easyface/easyface/internal/store"
)

var defaultSpeedPresets = []time.Duration{time.Second, 2 * time.Second, 3 * time.Second, 5 * time.Second}


type prefsState struct {
	cursor *focus.Flat
	// draft holds shortcut edits until they are saved.
	draft store.Shortcuts
	// capture is the command waiting for a key, empty when not capturing.
	capture string
}

func (m *Model) initPrefs(sink focus.Sink) {
	m.prefs.draft = m.shortcuts.Clone()
	m.prefs.cursor = focus.NewFlat(domainPrefs, m.prefsIDs, sink)
}

func (m *Model) speedPresets() []time.Duration {
	if len(m.cfg.UI.SpeedPresets) > 0 {
		return m.cfg.UI.SpeedPresets
	}
	return defaultSpeedPresets
}

func (m *Model) prefsIDs() []string {
	ids := []string{"set-font-small", "set-font-medium", "set-font-large", "set-contrast", "set-sounds"}
	for _, d := range m.speedPresets() {
		ids = append(ids, "set-speed-"+strconv.FormatInt(d.Milliseconds(), 10))
	}
	for _, c := range screen.Commands() {
		ids = append(ids, "set-key-"+c)
	}
	return append(ids, "set-keys-save", "set-keys-reset")
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (m *Model) prefsView(p painter, cw int) piece {
	s := m.settings
	btn := func(id, label string, active bool) piece {
		return p.button(control{id: id, label: label, domain: domainPrefs, active: active})
	}
	var speeds []piece
	for _, d := range m.speedPresets() {
		ms := d.Milliseconds()
		speeds = append(speeds, btn("set-speed-"+strconv.FormatInt(ms, 10), formatSeconds(d), int(ms) == s.ScanPeriodMS))
	}
	var keys []piece
	for _, c := range screen.Commands() {
		sc, _ := screen.ForCommand(c)
		key := "none"
		if k := m.prefs.draft[c]; k != "" {
			key = "Ctrl+" + strings.ToUpper(k)
		}
		if m.prefs.capture == c {
			key = "press a key…"
		}
		keys = append(keys, btn("set-key-"+c, sc.Title()+": "+key, m.prefs.capture == c))
	}
	return vjoin(
		textPiece(p.st.muted(), "Text size"),
		flow(cw, 1,
			btn("set-font-small", "Small", s.FontSize == store.FontSmall),
			btn("set-font-medium", "Medium", s.FontSize == store.FontMedium),
			btn("set-font-large", "Large", s.FontSize == store.FontLarge),
		),
		textPiece(p.st.muted(), "Display and sound"),
		flow(cw, 1,
			btn("set-contrast", "High contrast: "+onOff(s.HighContrast), s.HighContrast),
			btn("set-sounds", "Sounds: "+onOff(s.SoundsEnabled), s.SoundsEnabled),
		),
		textPiece(p.st.muted(), "Scan speed"),
		flow(cw, 1, speeds...),
		textPiece(p.st.muted(), "Shortcuts (Ctrl + key)"),
		flow(cw, 1, keys...),
		flow(cw, 1,
			btn("set-keys-save", "Save shortcuts", false),
			btn("set-keys-reset", "Clear shortcuts", false),
		),
	)
}

func formatSeconds(d time.Duration) string {
	secs := strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
	if secs == "1" {
		return "1 second"
	}
	return secs + " seconds"
}

func (m *Model) activatePrefs(id string) error {
	switch {
	case strings.HasPrefix(id, "set-font-"):
		fs, err := store.ParseFontSize(strings.TrimPrefix(id, "set-font-"))
		if err != nil {
			return fmt.Errorf("activate: %w", err)
		}
		m.settings.FontSize = fs
		m.resize()
		m.saveSettings("Text size " + string(fs))
	case id == "set-contrast":
		m.settings.HighContrast = !m.settings.HighContrast
		m.saveSettings("High contrast " + onOff(m.settings.HighContrast))
	case id == "set-sounds":
		m.settings.SoundsEnabled = !m.settings.SoundsEnabled
		m.saveSettings("Sounds " + onOff(m.settings.SoundsEnabled))
	case strings.HasPrefix(id, "set-speed-"):
		ms, err := strconv.Atoi(strings.TrimPrefix(id, "set-speed-"))
		if err != nil {
			return fmt.Errorf("activate: bad speed %q", id)
		}
		m.setScanPeriod(time.Duration(ms) * time.Millisecond)
	case strings.HasPrefix(id, "set-key-"):
		cmd := strings.TrimPrefix(id, "set-key-")
		m.prefs.capture = cmd
		sc, _ := screen.ForCommand(cmd)
		m.setStatus("Press a key for "+sc.Title()+". Backspace removes it, Escape cancels.", false)
	case id == "set-keys-save":
		m.saveShortcuts()
	case id == "set-keys-reset":
		m.prefs.draft = store.Shortcuts{}
		m.setStatus("Shortcuts cleared. Choose Save to keep this.", false)
	default:
		return fmt.Errorf("activate: unknown settings control %q", id)
	}
	return nil
}

// setScanPeriod changes the scan speed, persists it and restarts a running
// scan at the new speed.
func (m *Model) setScanPeriod(d time.Duration) {
	ms := int(d.Milliseconds())
	if ms < store.MinScanPeriodMS || ms > store.MaxScanPeriodMS {
		m.fail("Scan speed out of range")
		return
	}
	m.settings.ScanPeriodMS = ms
	m.push(m.engine.SetPeriod(d))
	msg := "Scan speed set to " + formatSeconds(d)
	m.saveSettings(msg)
	m.speak(msg)
}

// saveSettings writes the whole record back. A failure keeps the change in
// memory for this session.
func (m *Model) saveSettings(msg string) {
	m.click()
	if m.store != nil {
		if err := m.store.SaveSettings(m.settings); err != nil {
			m.log.Error(err, "saving settings failed")
			m.fail("Settings changed but could not be saved")
			return
		}
	}
	m.setStatus(msg, false)
}

func (m *Model) saveShortcuts() {
	if err := m.prefs.draft.Validate(); err != nil {
		m.fail(err.Error())
		return
	}
	if m.store != nil {
		if err := m.store.SaveShortcuts(m.prefs.draft); err != nil {
			m.log.Error(err, "saving shortcuts failed")
			m.fail("Could not save shortcuts")
			return
		}
	}
	m.shortcuts = m.prefs.draft.Clone()
	m.setStatus("Shortcuts saved", false)
	m.speak("Custom shortcuts saved")
}

// captureShortcut assigns the next key to the command being edited.
func (m *Model) captureShortcut(msg tea.KeyPressMsg) {
	cmd := m.prefs.capture
	switch msg.String() {
	case "esc":
		m.prefs.capture = ""
		m.setStatus("Shortcut unchanged", false)
		return
	case "backspace", "delete":
		delete(m.prefs.draft, cmd)
		m.prefs.capture = ""
		m.setStatus("Shortcut removed. Choose Save to keep this.", false)
		return
	}
	runes := []rune(msg.Text)
	if len(runes) != 1 && msg.Mod.Contains(tea.ModCtrl) && unicode.IsPrint(msg.Code) {
		runes = []rune{msg.Code}
	}
	if len(runes) != 1 || !unicode.IsPrint(runes[0]) || unicode.IsSpace(runes[0]) {
		m.fail("Press a single letter or digit")
		return
	}
	key := string(unicode.ToLower(runes[0]))
	if store.IsReserved(key) {
		m.fail("Ctrl+" + strings.ToUpper(key) + " is reserved")
		return
	}
	for other, k := range m.prefs.draft {
		if k == key && other != cmd {
			sc, _ := screen.ForCommand(other)
			m.fail("Ctrl+" + strings.ToUpper(key) + " is already used by " + sc.Title())
			return
		}
	}
	m.prefs.draft[cmd] = key
	m.prefs.capture = ""
	m.setStatus("Ctrl+"+strings.ToUpper(key)+" assigned. Choose Save to keep this.", false)
}
