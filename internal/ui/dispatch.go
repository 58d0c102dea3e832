package ui

import (
	"fmt"
	"strings"
	"unicode"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/easyface/easyface/internal/registry"
	"github.com/easyface/easyface/internal/scan"
	"github.com/easyface/easyface/internal/screen"
)

// handleKey is the single key handler. Screen keys come first, then Ctrl
// shortcuts, then the scan keys. Each branch that handles the key returns so
// no key is handled twice.
func (m *Model) handleKey(msg tea.KeyPressMsg) {
	k := msg.String()

	if key.Matches(msg, m.keys.Quit) || msg.Code == 0x03 {
		m.engine.Disable()
		m.quitting = true
		m.push(tea.Quit)
		return
	}
	if key.Matches(msg, m.keys.Debug) {
		m.toggleDebug()
		return
	}
	if m.current == screen.AccessibilitySettings && m.prefs.capture != "" {
		m.captureShortcut(msg)
		return
	}
	if m.inputFocus != "" {
		if m.handleFieldKey(msg) {
			return
		}
	} else if m.handleScreenKey(msg) {
		return
	}
	if m.handleShortcut(msg) {
		return
	}
	if m.scanMode && m.engine.State() != scan.Idle && m.handleScanKey(k) {
		return
	}
	if m.inputFocus == "" && m.handleCommonKey(k) {
		return
	}
	if m.scanMode {
		m.handleScanKey(k)
	}
}

// handleScanKey implements Enter, Space and Escape while scan mode is on.
func (m *Model) handleScanKey(k string) bool {
	switch k {
	case "enter":
		if cmd, ok := m.engine.ActivateCurrent(); ok {
			m.push(cmd)
		}
		return true
	case "space":
		m.engine.TogglePause()
		return true
	case "esc":
		if m.current != screen.Welcome {
			m.goHome()
		} else {
			m.setScanMode(false)
		}
		return true
	}
	return false
}

// handleFieldKey routes keys while a text field has input focus. It
// returns false for keys that should reach the global shortcuts instead.
func (m *Model) handleFieldKey(msg tea.KeyPressMsg) bool {
	switch k := msg.String(); k {
	case "esc":
		m.blurInput()
		return true
	case "tab", "shift+tab":
		m.blurInput()
		m.tabMove(tabDir(k))
		return true
	}
	if key.Matches(msg, m.keys.Help, m.keys.Voice) {
		return false
	}
	if m.isShortcut(msg) {
		return false
	}
	if f, ok := m.fields[m.inputFocus]; ok {
		m.push(f.Update(msg))
	}
	return true
}

func (m *Model) handleScreenKey(msg tea.KeyPressMsg) bool {
	switch m.current {
	case screen.Welcome:
		return m.welcomeKey(msg.String())
	case screen.Calculator:
		return m.calcKey(msg)
	case screen.CommunicationAid:
		return m.commKey(msg.String())
	case screen.AccessibilitySettings:
		return m.flatKey(m.prefs.cursor, msg.String())
	case screen.PDFReader:
		return m.pdfKey(msg.String())
	case screen.FileManager:
		return m.flatKey(m.files.cursor, msg.String())
	case screen.Help:
		return m.helpKey(msg.String())
	}
	return false
}

// handleCommonKey covers Tab traversal, activation of the focused control,
// Escape to the menu and paging.
func (m *Model) handleCommonKey(k string) bool {
	switch k {
	case "tab", "shift+tab":
		m.tabMove(tabDir(k))
		return true
	case "enter", "space":
		if m.focused == "" {
			return false
		}
		m.activateLogged(m.focused)
		return true
	case "esc":
		if m.current == screen.Welcome {
			return false
		}
		m.goHome()
		return true
	case "pgup":
		m.scrollBy(-m.pageSize())
		return true
	case "pgdown":
		m.scrollBy(m.pageSize())
		return true
	}
	return false
}

// handleShortcut resolves Ctrl shortcuts: the custom map first, then the
// built-in Ctrl+digit bindings, then Ctrl+S. F1 and F2 open help and voice.
func (m *Model) handleShortcut(msg tea.KeyPressMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.navigate(screen.Help)
		return true
	case key.Matches(msg, m.keys.Voice):
		m.listen()
		return true
	}
	r, ok := ctrlRune(msg)
	if !ok {
		return false
	}
	if cmd, ok := m.shortcuts.Lookup(string(r)); ok {
		if s, ok := screen.ForCommand(cmd); ok {
			m.navigate(s)
			return true
		}
	}
	if s, ok := screen.ForDigit(r); ok {
		m.navigate(s)
		return true
	}
	if key.Matches(msg, m.keys.Scan) {
		m.toggleScan()
		return true
	}
	return false
}

func (m *Model) isShortcut(msg tea.KeyPressMsg) bool {
	r, ok := ctrlRune(msg)
	if !ok {
		return false
	}
	if _, ok := m.shortcuts.Lookup(string(r)); ok {
		return true
	}
	if _, ok := screen.ForDigit(r); ok {
		return true
	}
	return key.Matches(msg, m.keys.Scan)
}

// ctrlRune returns the lowercased key pressed together with Ctrl.
func ctrlRune(msg tea.KeyPressMsg) (rune, bool) {
	if !msg.Mod.Contains(tea.ModCtrl) || msg.Mod.Contains(tea.ModAlt) {
		return 0, false
	}
	if !unicode.IsPrint(msg.Code) {
		return 0, false
	}
	return unicode.ToLower(msg.Code), true
}

func tabDir(k string) int {
	if k == "shift+tab" {
		return -1
	}
	return 1
}

func (m *Model) pageSize() int {
	_, _, _, bodyH := m.geometry()
	return max(1, bodyH-2)
}

// tabOrder is the native focus order: the sidebar, then the screen's
// focusable controls in reading order.
func (m *Model) tabOrder() []string {
	var elems []registry.Element
	if m.current != screen.Welcome {
		elems = append(elems, m.reg.Navigation()...)
	}
	elems = append(elems, m.reg.Elements(m.current)...)
	ids := make([]string, 0, len(elems))
	for _, e := range elems {
		if e.Disabled || e.Visibility != registry.Visible || e.Bounds.Width <= 0 {
			continue
		}
		ids = append(ids, e.ID)
	}
	return ids
}

// tabMove moves focus through the native order, then resyncs whichever
// cursor owns the newly focused control.
func (m *Model) tabMove(dir int) {
	ids := m.tabOrder()
	if len(ids) == 0 {
		return
	}
	i := -1
	for j, id := range ids {
		if id == m.focused {
			i = j
			break
		}
	}
	switch {
	case i < 0 && dir > 0:
		i = 0
	case i < 0:
		i = len(ids) - 1
	default:
		i = (i + dir + len(ids)) % len(ids)
	}
	id := ids[i]
	m.syncCursor(id)
	if _, ok := m.fields[id]; ok {
		m.focusInput(id)
	}
}

// syncCursor makes id the position of whichever cursor contains it, or
// just focuses it when none does.
func (m *Model) syncCursor(id string) {
	if m.sidebar.Sync(id) {
		return
	}
	synced := false
	switch m.current {
	case screen.Calculator:
		synced = m.calc.grid.Sync(id)
	case screen.CommunicationAid:
		synced = m.comm.cursor.Sync(id)
	case screen.AccessibilitySettings:
		synced = m.prefs.cursor.Sync(id)
	case screen.PDFReader:
		synced = m.pdf.cursor.Sync(id)
	case screen.FileManager:
		synced = m.files.cursor.Sync(id)
	}
	if !synced {
		navSink{m}.Focus(id)
	}
}

type flatCursor interface {
	Move(dir int)
}

func (m *Model) flatKey(c flatCursor, k string) bool {
	switch k {
	case "down", "right":
		c.Move(1)
		return true
	case "up", "left":
		c.Move(-1)
		return true
	}
	return m.activateFocusedKey(k)
}

// activateFocusedKey makes Enter and Space activate the focused control on
// cursor screens, ahead of the scan keys.
func (m *Model) activateFocusedKey(k string) bool {
	if (k != "enter" && k != "space") || m.focused == "" {
		return false
	}
	m.activateLogged(m.focused)
	return true
}

func (m *Model) welcomeKey(k string) bool {
	switch k {
	case "down":
		m.sidebar.Move(1)
		return true
	case "up":
		m.sidebar.Move(-1)
		return true
	}
	return false
}

// activate performs the action a click on id performs.
func (m *Model) activate(id string) error {
	e, ok := m.lookup(id)
	if !ok {
		return fmt.Errorf("activate: unknown element %q", id)
	}
	if e.Disabled {
		m.fail(e.Label + " is not available")
		return nil
	}
	if _, ok := m.fields[id]; ok {
		m.focusInput(id)
		return nil
	}
	if rest, ok := strings.CutPrefix(id, "nav-"); ok {
		return m.activateNav(rest)
	}
	switch m.current {
	case screen.Welcome:
		return m.activateWelcome(id)
	case screen.TextEditor:
		return m.activateEditor(id)
	case screen.FileManager:
		return m.activateFiles(id)
	case screen.Calculator:
		return m.activateCalc(id)
	case screen.SiteLauncher:
		return m.activateSites(id)
	case screen.MediaPlayer:
		return m.activateMedia(id)
	case screen.PDFReader:
		return m.activatePDF(id)
	case screen.CommunicationAid:
		return m.activateComm(id)
	case screen.AccessibilitySettings:
		return m.activatePrefs(id)
	case screen.Help:
		return m.activateHelp(id)
	}
	return fmt.Errorf("activate: no handler for %q on %s", id, m.current)
}

func (m *Model) activateLogged(id string) {
	if err := m.activate(id); err != nil {
		m.log.Error(err, "activation failed", "id", id)
	}
}

// handleClick hit-tests a left click and activates what it lands on.
func (m *Model) handleClick(mouse tea.Mouse) {
	if mouse.Button != tea.MouseLeft {
		return
	}
	sw, _, _, bodyH := m.geometry()
	y := mouse.Y - headerHeight
	if y < 0 || y >= bodyH {
		return
	}
	if mouse.X >= sw {
		y += m.scroll
	}
	e, ok := m.reg.HitTest(m.current, mouse.X, y)
	if !ok {
		return
	}
	if _, isField := m.fields[e.ID]; !isField {
		m.syncCursor(e.ID)
	}
	m.activateLogged(e.ID)
}
