package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/easyface/easyface/internal/registry"
	"github.com/easyface/easyface/internal/scan"
	"github.com/easyface/easyface/internal/screen"
)

// Cursor domains. At most one element per domain carries the navigation
// highlight.
const (
	domainSidebar = "sidebar"
	domainFiles   = "files"
	domainCalc    = "calc"
	domainPDF     = "pdf"
	domainComm    = "comm"
	domainPrefs   = "prefs"
)

func (m *Model) styles() styles {
	return styles{
		theme:   selectTheme(m.cfg.UI, m.settings.HighContrast),
		noColor: m.noColor,
		scale:   scaleFor(m.settings.FontSize),
	}
}

func (m *Model) painter(hidden bool) painter {
	return painter{st: m.styles(), scanned: m.scanned, nav: m.nav, hidden: hidden}
}

// screenPiece lays out the content pane of s. Screens that are not current
// are laid out hidden so their elements are never candidates.
func (m *Model) screenPiece(s screen.Screen, hidden bool) piece {
	p := m.painter(hidden)
	_, _, cw, _ := m.geometry()
	var body piece
	switch s {
	case screen.Welcome:
		body = m.welcomeView(p, cw)
	case screen.TextEditor:
		body = m.editorView(p, cw)
	case screen.FileManager:
		body = m.filesView(p, cw)
	case screen.Calculator:
		body = m.calcView(p, cw)
	case screen.SiteLauncher:
		body = m.sitesView(p, cw)
	case screen.MediaPlayer:
		body = m.mediaView(p, cw)
	case screen.PDFReader:
		body = m.pdfView(p, cw)
	case screen.CommunicationAid:
		body = m.commView(p, cw)
	case screen.AccessibilitySettings:
		body = m.prefsView(p, cw)
	case screen.Help:
		body = m.helpView(p, cw)
	}
	title := textPiece(p.st.title(), s.Title())
	return vjoin(title, blankPiece(1), body)
}

// screenElements publishes the elements of s in document coordinates.
func (m *Model) screenElements(s screen.Screen) []registry.Element {
	_, left, _, _ := m.geometry()
	p := m.screenPiece(s, s != m.current)
	return shift(p.elems, 0, left)
}

func (m *Model) contentHeight() int {
	return m.screenPiece(m.current, false).height()
}

// Render draws one full frame: header, sidebar and content, the optional
// debug bar and the status line.
func (m *Model) Render() string {
	sw, _, cw, bodyH := m.geometry()
	st := m.styles()

	side := window(m.sidebarPiece().view, 0, bodyH, sw)
	content := window(m.screenPiece(m.current, false).view, m.scroll, bodyH, cw)
	sideLines := strings.Split(side, "\n")
	contentLines := strings.Split(content, "\n")
	pad := strings.Repeat(" ", gutter)

	var b strings.Builder
	b.WriteString(m.renderHeader(st))
	for i := 0; i < bodyH; i++ {
		b.WriteByte('\n')
		b.WriteString(sideLines[i])
		b.WriteString(pad)
		b.WriteString(contentLines[i])
	}
	if dbg := m.debug.View(); dbg != "" {
		b.WriteByte('\n')
		b.WriteString(dbg)
	}
	b.WriteByte('\n')
	b.WriteString(m.renderStatus(m.width))
	return b.String()
}

func (m *Model) renderHeader(st styles) string {
	name := m.cfg.App.About.Name
	if name == "" {
		name = "EASYFACE"
	}
	left := " " + name + " · " + m.current.Title()
	right := ""
	if m.scanMode {
		switch m.engine.State() {
		case scan.Running:
			right = "SCAN " + m.engine.Period().String()
		case scan.Paused:
			right = "SCAN PAUSED"
		default:
			right = "SCAN"
		}
		right += " "
	}
	gap := m.width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	line := left
	if gap > 0 {
		line += strings.Repeat(" ", gap) + right
	}
	return st.header().Render(fit(line, m.width))
}
