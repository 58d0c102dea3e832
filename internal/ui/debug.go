package ui

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/easyface/easyface/internal/scan"
)

// DebugModel represents the debug bar component
type DebugModel struct {
	Visible         bool
	NoColor         bool
	Width           int
	LastDebugOutput string // Cached output to prevent flicker
	LastDebugValues string // Hash of debug values to detect changes
}

// NewDebugModel creates a new debug model
func NewDebugModel() DebugModel {
	return DebugModel{
		Width: defaultWidth,
	}
}

// View renders the debug bar if visible
func (m DebugModel) View() string {
	if !m.Visible {
		return ""
	}
	return m.LastDebugOutput
}

// DebugInfo contains all the debug information to display
type DebugInfo struct {
	WinWidth   int
	WinHeight  int
	Screen     string
	ScanMode   bool
	Scan       scan.Snapshot
	Candidates int
	Focused    string
	InputFocus string
	Nav        string
	Scroll     int
}

func (d DebugInfo) String() string {
	return fmt.Sprintf("DBG: win=%dx%d screen=%s scanMode=%v | %s cand=%d | focus=%q input=%q nav=[%s] scroll=%d",
		d.WinWidth, d.WinHeight, d.Screen, d.ScanMode, d.Scan, d.Candidates,
		d.Focused, d.InputFocus, d.Nav, d.Scroll)
}

// UpdateDebugInfo regenerates the bar when the state key changed.
func (m *DebugModel) UpdateDebugInfo(stateKey string, info DebugInfo, fg color.Color) {
	if m.LastDebugValues == stateKey {
		return
	}
	debugStyle := lipgloss.NewStyle()
	if !m.NoColor && fg != nil {
		debugStyle = debugStyle.Foreground(fg)
	}
	target := defaultWidth
	if m.Width > 0 {
		target = m.Width
	}
	line := runewidth.Truncate(info.String(), target, "...")
	m.LastDebugOutput = debugStyle.Render(runewidth.FillRight(line, target))
	m.LastDebugValues = stateKey
}

// SetWidth sets the width of the debug bar
func (m *DebugModel) SetWidth(width int) {
	m.Width = width
}

// SetVisible sets the visibility of the debug bar
func (m *DebugModel) SetVisible(visible bool) {
	m.Visible = visible
	if !visible {
		// Clear cache when hidden
		m.LastDebugOutput = ""
		m.LastDebugValues = ""
	}
}

func (m *Model) debugInfo() DebugInfo {
	domains := make([]string, 0, len(m.nav))
	for _, d := range []string{domainSidebar, domainFiles, domainCalc, domainPDF, domainComm, domainPrefs} {
		if id := m.nav[d]; id != "" {
			domains = append(domains, d+"="+id)
		}
	}
	return DebugInfo{
		WinWidth:   m.width,
		WinHeight:  m.height,
		Screen:     m.current.String(),
		ScanMode:   m.scanMode,
		Scan:       m.engine.Snapshot(),
		Candidates: len(m.reg.Collect(m.current)),
		Focused:    m.focused,
		InputFocus: m.inputFocus,
		Nav:        strings.Join(domains, " "),
		Scroll:     m.scroll,
	}
}

func (m *Model) syncDebug() {
	if !m.debug.Visible {
		return
	}
	info := m.debugInfo()
	m.debug.UpdateDebugInfo(info.String(), info, m.styles().theme.Debug)
}

// toggleDebug flips the debug bar and writes the scanner and registry state
// to the log. No other state changes.
func (m *Model) toggleDebug() {
	m.debug.SetVisible(!m.debug.Visible)
	m.debug.SetWidth(m.width)
	m.dumpState()
	m.resize()
}

func (m *Model) dumpState() {
	info := m.debugInfo()
	cands := m.reg.Collect(m.current)
	ids := make([]string, len(cands))
	for i, c := range cands {
		ids[i] = fmt.Sprintf("%s@%d,%d", c.ID, c.Top, c.Left)
	}
	m.log.Info("state dump",
		"screen", info.Screen,
		"previous", m.previous.String(),
		"scanMode", info.ScanMode,
		"scan", info.Scan.String(),
		"restartPending", info.Scan.RestartPending,
		"settling", info.Scan.Settling,
		"recoveries", info.Scan.Recoveries,
		"candidates", ids,
		"focused", info.Focused,
		"nav", info.Nav,
	)
}
