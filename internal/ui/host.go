package ui

import (
	"github.com/easyface/easyface/internal/registry"
	"github.com/easyface/easyface/internal/screen"
)

// scanHost is the model as seen by the scanner.
type scanHost struct{ m *Model }

func (h scanHost) ScanEnabled() bool { return h.m.scanMode }
func (h scanHost) CurrentScreen() screen.Screen { return h.m.current }
func (h scanHost) SoundsEnabled() bool { return h.m.settings.SoundsEnabled }
func (h scanHost) Activate(id string) error { return h.m.activate(id) }
func (h scanHost) Status(msg string) { h.m.setStatus(msg, false) }
func (h scanHost) Present(id string) bool { return h.m.reg.Present(h.m.current, id) }
func (h scanHost) Candidates(s screen.Screen) []registry.Candidate {
	return h.m.reg.Collect(s)
}

// Highlight outlines c, moves keyboard focus to it and scrolls it into view.
func (h scanHost) Highlight(c registry.Candidate) {
	m := h.m
	m.scanned = c.ID
	m.blurInput()
	m.focused = c.ID
	if e, ok := m.reg.Lookup(m.current, c.ID); ok {
		m.scrollTo(e)
	}
}

func (h scanHost) ClearHighlight() { h.m.scanned = "" }

// navSink applies cursor moves: focus plus the per-domain navigation highlight.
type navSink struct{ m *Model }

func (s navSink) Focus(id string) {
	s.m.blurInput()
	s.m.focused = id
	if e, ok := s.m.lookup(id); ok {
		s.m.scrollTo(e)
	}
}

func (s navSink) Highlight(domain, id string) {
	s.m.nav[domain] = id
}

// lookup finds id among the current screen's elements, then the sidebar.
func (m *Model) lookup(id string) (registry.Element, bool) {
	if e, ok := m.reg.Lookup(m.current, id); ok {
		return e, true
	}
	for _, e := range m.reg.Navigation() {
		if e.ID == id {
			return e, true
		}
	}
	return registry.Element{}, false
}

// scrollTo adjusts the content scroll so e is fully visible. Sidebar
// elements never scroll.
func (m *Model) scrollTo(e registry.Element) {
	sw, _, _, bodyH := m.geometry()
	if e.Bounds.Left < sw {
		return
	}
	top, bottom := e.Bounds.Top, e.Bounds.Top+e.Bounds.Height
	switch {
	case top < m.scroll:
		m.scroll = top
	case bottom > m.scroll+bodyH:
		m.scroll = max(0, bottom-bodyH)
	}
}

func (m *Model) scrollBy(n int) {
	_, _, _, bodyH := m.geometry()
	limit := max(0, m.contentHeight()-bodyH)
	m.scroll = max(0, min(m.scroll+n, limit))
}
