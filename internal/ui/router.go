package ui

import (
	"github.com/easyface/easyface/internal/scan"
	"github.com/easyface/easyface/internal/screen"
	"github.com/easyface/easyface/pkg/logger"
)

// navigate makes s the only visible screen. When scan mode is on and the
// screen actually changed, a restart is scheduled against the new screen.
func (m *Model) navigate(s screen.Screen) {
	if !s.Valid() {
		return
	}
	prev := m.current
	m.blurInput()
	m.previous = prev
	m.current = s
	m.scroll = 0
	m.focused = ""
	m.enterScreen(s)
	m.click()
	m.log.V(1).Info("screen changed", "from", prev.String(), "to", s.String())
	if !m.scanMode {
		m.status = statusLine{id: m.status.id + 1, text: m.defaultStatus()}
	}
	if m.scanMode && s != prev {
		m.push(m.engine.Restart())
	}
}

// goHome returns to the welcome screen.
func (m *Model) goHome() { m.navigate(screen.Welcome) }

// enterScreen resets the per-screen cursor state on arrival.
func (m *Model) enterScreen(s screen.Screen) {
	switch s {
	case screen.Calculator:
		m.calc.grid.Move(0, 0)
	case screen.AccessibilitySettings:
		m.prefs.draft = m.shortcuts.Clone()
		m.prefs.capture = ""
	case screen.CommunicationAid:
		m.comm.cursor.Refresh()
	}
}

// setScanMode turns scan mode on or off.
func (m *Model) setScanMode(on bool) {
	if on == m.scanMode {
		return
	}
	m.scanMode = on
	if on {
		m.blurInput()
		m.log.Info("scan mode on", logger.ScreenKey, m.current.String())
		m.push(m.engine.Start())
		if m.engine.State() != scan.Idle {
			m.setStatus("Scan mode on", false)
		}
	} else {
		m.engine.Disable()
		m.log.Info("scan mode off")
		m.setStatus("Scan mode off", false)
	}
	m.click()
}

func (m *Model) toggleScan() { m.setScanMode(!m.scanMode) }
