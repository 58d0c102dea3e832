package ui

import (
	"fmt"
	"strings"

	"github.com/easyface/easyface/internal/registry"
	"github.com/easyface/easyface/internal/screen"
)

// sidebarPiece is the navigation menu. It is painted on every screen and
// only scanned on the welcome screen.
func (m *Model) sidebarPiece() piece {
	sw, _, _, _ := m.geometry()
	p := m.painter(false)
	rows := []piece{textPiece(p.st.muted(), fit(" Menu", sw))}
	digits := map[screen.Screen]rune{}
	for d := '1'; d <= '9'; d++ {
		if s, ok := screen.ForDigit(d); ok {
			digits[s] = d
		}
	}
	for _, s := range screen.All() {
		label := s.Title()
		if d, ok := digits[s]; ok {
			label = fmt.Sprintf("%s ^%c", label, d)
		}
		rows = append(rows, p.row(control{
			id:     "nav-" + s.String(),
			label:  label,
			domain: domainSidebar,
			active: s == m.current,
		}, sw))
	}
	scanLabel := "Scan mode: off"
	if m.scanMode {
		scanLabel = "Scan mode: on"
	}
	rows = append(rows,
		blankPiece(1),
		p.row(control{id: "nav-scan", label: scanLabel, domain: domainSidebar, active: m.scanMode}, sw),
		p.row(control{id: "nav-voice", label: "Voice command", domain: domainSidebar}, sw),
	)
	return vjoin(rows...)
}

func (m *Model) sidebarElements() []registry.Element {
	return m.sidebarPiece().elems
}

func (m *Model) sidebarIDs() []string {
	elems := m.sidebarElements()
	ids := make([]string, 0, len(elems))
	for _, e := range elems {
		ids = append(ids, e.ID)
	}
	return ids
}

// activateNav handles the sidebar entries.
func (m *Model) activateNav(name string) error {
	switch name {
	case "scan":
		m.toggleScan()
		return nil
	case "voice":
		m.listen()
		return nil
	}
	s, ok := screen.Parse(name)
	if !ok {
		return fmt.Errorf("activate: unknown screen %q", name)
	}
	m.navigate(s)
	return nil
}

func (m *Model) welcomeView(p painter, cw int) piece {
	about := m.cfg.App.About
	var parts []piece
	if about.Tagline != "" {
		parts = append(parts, textPiece(p.st.text(), about.Tagline), blankPiece(1))
	}
	for _, line := range about.Lines {
		for _, l := range wrap(line, cw) {
			parts = append(parts, linePiece(p.st.muted(), l))
		}
	}
	scanLabel := "Start scanning"
	if m.scanMode {
		scanLabel = "Stop scanning"
	}
	parts = append(parts, blankPiece(1), flow(cw, 1,
		p.button(control{id: "welcome-scan", label: scanLabel, active: m.scanMode}),
		p.button(control{id: "welcome-read", label: "Read aloud"}),
		p.button(control{id: "welcome-help", label: "Help"}),
	))
	if warnings := m.caps.Warnings(); len(warnings) > 0 {
		parts = append(parts, blankPiece(1))
		for _, w := range warnings {
			parts = append(parts, textPiece(p.st.status(true), "! "+w))
		}
	}
	return vjoin(parts...)
}

func (m *Model) activateWelcome(id string) error {
	switch id {
	case "welcome-scan":
		m.toggleScan()
	case "welcome-read":
		about := m.cfg.App.About
		m.speak(strings.Join(append([]string{about.Name, about.Tagline}, about.Lines...), ". "))
		m.setStatus("Reading the welcome text", false)
	case "welcome-help":
		m.navigate(screen.Help)
	default:
		return fmt.Errorf("activate: unknown welcome control %q", id)
	}
	return nil
}
