package capability

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFRenderer extracts page text with github.com/ledongthuc/pdf.
type PDFRenderer struct{}

func (PDFRenderer) Render(data []byte) (Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	n := r.NumPage()
	if n <= 0 {
		return nil, fmt.Errorf("open pdf: document has no pages")
	}
	return &pdfDocument{reader: r, pages: n}, nil
}

type pdfDocument struct {
	reader *pdf.Reader
	pages  int
}

func (d *pdfDocument) NumPages() int { return d.pages }

func (d *pdfDocument) PageText(n int) (string, error) {
	if n < 1 || n > d.pages {
		return "", fmt.Errorf("page %d out of range [1, %d]", n, d.pages)
	}
	p := d.reader.Page(n)
	if p.V.IsNull() {
		return "", fmt.Errorf("page %d not found", n)
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("page %d: %w", n, err)
	}
	return strings.TrimSpace(text), nil
}
