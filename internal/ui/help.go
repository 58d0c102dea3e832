package ui

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// renderMarkdown turns the help document into wrapped terminal lines.
// Headings use the title style; list items get a bullet.
func renderMarkdown(src []byte, width int, st styles) []string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := markdown.Parse(src, p)
	var lines []string
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch n := node.(type) {
		case *ast.Heading:
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, st.title().Render(plainText(n)))
			return ast.SkipChildren
		case *ast.Paragraph:
			lines = append(lines, wrap(plainText(n), width)...)
			lines = append(lines, "")
			return ast.SkipChildren
		case *ast.ListItem:
			for i, l := range wrap(plainText(n), width-2) {
				prefix := "  "
				if i == 0 {
					prefix = "• "
				}
				lines = append(lines, prefix+l)
			}
			return ast.SkipChildren
		}
		return ast.GoToNext
	})
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// plainText concatenates the literal text under n.
func plainText(n ast.Node) string {
	var b strings.Builder
	ast.WalkFunc(n, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch t := node.(type) {
		case *ast.Text:
			b.Write(t.Literal)
		case *ast.Code:
			b.Write(t.Literal)
		case *ast.Softbreak, *ast.Hardbreak:
			b.WriteByte(' ')
		}
		return ast.GoToNext
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

func (m *Model) helpView(p painter, cw int) piece {
	key := fmt.Sprintf("%d/%v/%v", cw, m.settings.HighContrast, m.noColor)
	if m.helpDoc == nil || m.helpFor != key {
		m.helpDoc = renderMarkdown(embeddedHelp, cw, p.st)
		m.helpDoc = append(m.helpDoc, "")
		m.helpDoc = append(m.helpDoc, keyHelpLines(m.keys, p.st, cw)...)
		m.helpFor = key
	}
	parts := []piece{p.button(control{id: "help-back", label: "◀ Main menu"}), blankPiece(1)}
	for _, l := range m.helpDoc {
		parts = append(parts, linePiece(p.st.text(), l))
	}
	return vjoin(parts...)
}

func (m *Model) activateHelp(id string) error {
	if id != "help-back" {
		return fmt.Errorf("activate: unknown help control %q", id)
	}
	m.goHome()
	return nil
}

func (m *Model) helpKey(key string) bool {
	switch key {
	case "down":
		m.scrollBy(1)
		return true
	case "up":
		m.scrollBy(-1)
		return true
	}
	return false
}
