package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/easyface/easyface/internal/capability"
	"github.com/easyface/easyface/internal/focus"
)

const (
	defaultPDFZoom = 1.5
	pdfZoomStep    = 0.25
	pdfMinZoom     = 0.5
	pdfMinWrap     = 20
)

type pdfState struct {
	path   lineField
	cursor *focus.Flat
	doc    capability.Document
	name   string
	page   int
	zoom   float64
	pages  map[int][]string
}

func (m *Model) initPDF(sink focus.Sink) {
	m.pdf.path = newLineField("~/Documents/file.pdf")
	m.fields["pdf-path"] = m.pdf.path
	m.pdf.zoom = m.cfg.UI.PDFZoom
	if m.pdf.zoom <= 0 {
		m.pdf.zoom = defaultPDFZoom
	}
	m.pdf.cursor = focus.NewFlat(domainPDF, m.pdfIDs, sink)
}

// pdfIDs is the toolbar cursor list, skipping disabled buttons.
func (m *Model) pdfIDs() []string {
	ids := []string{"pdf-path", "pdf-open"}
	if m.pdf.doc != nil {
		if m.pdf.page > 1 {
			ids = append(ids, "pdf-prev")
		}
		if m.pdf.page < m.pdf.doc.NumPages() {
			ids = append(ids, "pdf-next")
		}
		if m.pdf.zoom-pdfZoomStep >= pdfMinZoom {
			ids = append(ids, "pdf-zoomout")
		}
		ids = append(ids, "pdf-zoomin")
	}
	return ids
}

// pdfWrap is the text column width at the current zoom: zooming in makes
// the column narrower.
func (m *Model) pdfWrap(cw int) int {
	w := int(float64(cw) / m.pdf.zoom)
	return max(pdfMinWrap, min(w, cw))
}

func (m *Model) pdfView(p painter, cw int) piece {
	loaded := m.pdf.doc != nil
	n := 0
	if loaded {
		n = m.pdf.doc.NumPages()
	}
	toolbar := flow(cw, 1,
		p.button(control{id: "pdf-open", label: "Open", domain: domainPDF}),
		p.button(control{id: "pdf-prev", label: "◀ Previous", domain: domainPDF, disabled: !loaded || m.pdf.page <= 1}),
		p.button(control{id: "pdf-next", label: "Next ▶", domain: domainPDF, disabled: !loaded || m.pdf.page >= n}),
		p.button(control{id: "pdf-zoomout", label: "Zoom −", domain: domainPDF, disabled: !loaded || m.pdf.zoom-pdfZoomStep < pdfMinZoom}),
		p.button(control{id: "pdf-zoomin", label: "Zoom +", domain: domainPDF, disabled: !loaded}),
	)
	parts := []piece{
		p.frame(control{id: "pdf-path", label: "PDF file path", domain: domainPDF}, m.pdf.path.View()),
		toolbar,
	}
	if !loaded {
		return vjoin(append(parts, textPiece(p.st.muted(), "No document open"))...)
	}
	info := fmt.Sprintf("%s · Page %d of %d · Zoom %.0f%%", m.pdf.name, m.pdf.page, n, m.pdf.zoom*100)
	parts = append(parts, textPiece(p.st.text(), info), blankPiece(1))
	for _, line := range m.pdfLines(m.pdfWrap(cw)) {
		parts = append(parts, linePiece(p.st.text(), line))
	}
	return vjoin(parts...)
}

func (m *Model) pdfLines(width int) []string {
	raw, ok := m.pdf.pages[m.pdf.page]
	if !ok {
		text, err := m.pdf.doc.PageText(m.pdf.page)
		if err != nil {
			m.log.Error(err, "page render failed", "page", m.pdf.page)
			text = "This page could not be displayed."
		}
		raw = strings.Split(text, "\n")
		m.pdf.pages[m.pdf.page] = raw
	}
	var out []string
	for _, l := range raw {
		out = append(out, wrap(l, width)...)
	}
	return out
}

func (m *Model) activatePDF(id string) error {
	switch id {
	case "pdf-open":
		m.openPDF()
	case "pdf-prev":
		m.turnPage(-1)
	case "pdf-next":
		m.turnPage(1)
	case "pdf-zoomin":
		m.zoomPDF(pdfZoomStep)
	case "pdf-zoomout":
		m.zoomPDF(-pdfZoomStep)
	default:
		return fmt.Errorf("activate: unknown pdf control %q", id)
	}
	return nil
}

func (m *Model) openPDF() {
	path := strings.TrimSpace(m.pdf.path.Value())
	if path == "" {
		m.fail("Type the path of a PDF file first")
		return
	}
	data, err := m.caps.Files.ReadBytes(path)
	if err != nil {
		m.log.Error(err, "pdf read failed", "path", path)
		m.fail("Could not read " + path)
		return
	}
	doc, err := m.caps.Renderer.Render(data)
	if err != nil {
		m.log.Error(err, "pdf load failed", "path", path)
		m.fail("Error loading the PDF file")
		m.speak("Error loading the PDF file")
		return
	}
	m.pdf.doc = doc
	m.pdf.name = filepath.Base(path)
	m.pdf.page = 1
	m.pdf.pages = map[int][]string{}
	m.scroll = 0
	m.setStatus(fmt.Sprintf("Loaded %s, %d pages", m.pdf.name, doc.NumPages()), false)
	m.speak("PDF " + m.pdf.name + " loaded")
}

func (m *Model) turnPage(dir int) {
	if m.pdf.doc == nil {
		m.fail("Open a PDF first")
		return
	}
	next := m.pdf.page + dir
	if next < 1 || next > m.pdf.doc.NumPages() {
		m.fail("No more pages")
		return
	}
	m.pdf.page = next
	m.scroll = 0
	msg := fmt.Sprintf("Page %d of %d", next, m.pdf.doc.NumPages())
	m.setStatus(msg, false)
	m.speak(msg)
}

func (m *Model) zoomPDF(delta float64) {
	if m.pdf.doc == nil {
		m.fail("Open a PDF first")
		return
	}
	z := m.pdf.zoom + delta
	if z < pdfMinZoom {
		m.fail("Minimum zoom reached")
		return
	}
	m.pdf.zoom = z
	m.setStatus(fmt.Sprintf("Zoom %.0f%%", z*100), false)
}

func (m *Model) pdfKey(key string) bool {
	switch key {
	case "pgup":
		if m.pdf.doc != nil {
			m.turnPage(-1)
			return true
		}
	case "pgdown":
		if m.pdf.doc != nil {
			m.turnPage(1)
			return true
		}
	}
	return m.flatKey(m.pdf.cursor, key)
}
