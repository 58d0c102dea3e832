package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/easyface/easyface/internal/registry"
)

const (
	headerHeight = 1
	statusHeight = 1
	gutter       = 1
)

// piece is a rendered block plus the elements laid out inside it. Element
// bounds are relative to the block's top-left cell.
type piece struct {
	view  string
	elems []registry.Element
}

func (p piece) width() int {
	if p.view == "" {
		return 0
	}
	return lipgloss.Width(p.view)
}

func (p piece) height() int {
	if p.view == "" {
		return 0
	}
	return lipgloss.Height(p.view)
}

func shift(elems []registry.Element, top, left int) []registry.Element {
	out := make([]registry.Element, len(elems))
	for i, e := range elems {
		e.Bounds.Top += top
		e.Bounds.Left += left
		out[i] = e
	}
	return out
}

// hjoin places pieces side by side, top aligned, gap cells apart.
func hjoin(gap int, ps ...piece) piece {
	var views []string
	var elems []registry.Element
	left := 0
	for _, p := range ps {
		if p.view == "" && len(p.elems) == 0 {
			continue
		}
		if len(views) > 0 && gap > 0 {
			views = append(views, strings.Repeat(" ", gap))
			left += gap
		}
		views = append(views, p.view)
		elems = append(elems, shift(p.elems, 0, left)...)
		left += p.width()
	}
	if len(views) == 0 {
		return piece{}
	}
	return piece{view: lipgloss.JoinHorizontal(lipgloss.Top, views...), elems: elems}
}

// vjoin stacks pieces, left aligned.
func vjoin(ps ...piece) piece {
	var views []string
	var elems []registry.Element
	top := 0
	for _, p := range ps {
		if p.view == "" && len(p.elems) == 0 {
			continue
		}
		views = append(views, p.view)
		elems = append(elems, shift(p.elems, top, 0)...)
		top += p.height()
	}
	if len(views) == 0 {
		return piece{}
	}
	return piece{view: lipgloss.JoinVertical(lipgloss.Left, views...), elems: elems}
}

// flow lays pieces out left to right, wrapping to a new line when width
// would be exceeded.
func flow(width, gap int, ps ...piece) piece {
	var lines []piece
	var cur []piece
	used := 0
	for _, p := range ps {
		w := p.width()
		if len(cur) > 0 && used+gap+w > width {
			lines = append(lines, hjoin(gap, cur...))
			cur, used = nil, 0
		}
		if len(cur) > 0 {
			used += gap
		}
		cur = append(cur, p)
		used += w
	}
	if len(cur) > 0 {
		lines = append(lines, hjoin(gap, cur...))
	}
	return vjoin(lines...)
}

func textPiece(style lipgloss.Style, s string) piece {
	return piece{view: style.Render(s)}
}

// linePiece is one line of text; an empty line still takes a row.
func linePiece(style lipgloss.Style, s string) piece {
	if s == "" {
		return blankPiece(1)
	}
	return textPiece(style, s)
}

func blankPiece(n int) piece {
	if n <= 0 {
		return piece{}
	}
	return piece{view: strings.Repeat("\n", n-1) + " "}
}

// controlState is the visual state of one control.
type controlState struct {
	scanned   bool
	navigated bool
	disabled  bool
	active    bool
}

// control describes one interactive element to lay out.
type control struct {
	id     string
	label  string
	domain string
	// width is the inner label width; 0 fits the label.
	width int
	// lines pads the label vertically to this many lines.
	lines      int
	disabled   bool
	active     bool
	visibility registry.Visibility
	noScan     bool
}

// painter renders controls against the current highlight state.
type painter struct {
	st      styles
	scanned string
	nav     map[string]string
	// hidden marks every element as collapsed, for screens not on display.
	hidden bool
}

func (p painter) state(c control) controlState {
	return controlState{
		scanned:   c.id != "" && c.id == p.scanned,
		navigated: c.id != "" && c.domain != "" && p.nav[c.domain] == c.id,
		disabled:  c.disabled,
		active:    c.active,
	}
}

func (p painter) element(c control, w, h int) registry.Element {
	vis := c.visibility
	if p.hidden {
		vis = registry.Collapsed
	}
	return registry.Element{
		ID:         c.id,
		Label:      c.label,
		Domain:     c.domain,
		Bounds:     registry.Bounds{Width: w, Height: h},
		Scannable:  !c.noScan,
		Disabled:   c.disabled,
		Visibility: vis,
		Opacity:    1,
	}
}

// button renders a bordered control.
func (p painter) button(c control) piece {
	if c.visibility == registry.Collapsed {
		return piece{elems: []registry.Element{p.element(c, 0, 0)}}
	}
	label := c.label
	if c.width > 0 {
		label = center(label, c.width)
	}
	if c.lines > 1 {
		label = padLines(label, c.lines)
	}
	view := p.st.box(p.state(c)).Render(label)
	w, h := lipgloss.Width(view), lipgloss.Height(view)
	if c.visibility == registry.Hidden {
		view = blankBlock(w, h)
	}
	return piece{view: view, elems: []registry.Element{p.element(c, w, h)}}
}

// frame draws a border around arbitrary content, such as a text field,
// and registers it as one element.
func (p painter) frame(c control, content string) piece {
	view := p.st.box(p.state(c)).Padding(0).Render(content)
	return piece{view: view, elems: []registry.Element{p.element(c, lipgloss.Width(view), lipgloss.Height(view))}}
}

// row renders a borderless single-line control of fixed width.
func (p painter) row(c control, width int) piece {
	st := p.state(c)
	marker := "  "
	switch {
	case st.scanned:
		marker = "▶ "
	case st.navigated:
		marker = "» "
	case st.active:
		marker = "• "
	}
	text := runewidth.Truncate(marker+c.label, width, "…")
	text = runewidth.FillRight(text, width)
	view := p.st.row(st).Render(text)
	return piece{view: view, elems: []registry.Element{p.element(c, width, 1)}}
}

func center(s string, w int) string {
	sw := runewidth.StringWidth(s)
	if sw >= w {
		return runewidth.Truncate(s, w, "…")
	}
	left := (w - sw) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-sw-left)
}

func padLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= n {
		return s
	}
	above := (n - len(lines)) / 2
	below := n - len(lines) - above
	return strings.Repeat("\n", above) + s + strings.Repeat("\n", below)
}

func blankBlock(w, h int) string {
	line := strings.Repeat(" ", w)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// wrap word-wraps s to width cells.
func wrap(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	return strings.Split(ansi.Wordwrap(s, width, ""), "\n")
}

// window returns the visible rows [offset, offset+height) of view, padded
// to height lines of width cells.
func window(view string, offset, height, width int) string {
	lines := strings.Split(view, "\n")
	out := make([]string, 0, height)
	for i := offset; i < offset+height; i++ {
		line := ""
		if i >= 0 && i < len(lines) {
			line = lines[i]
		}
		out = append(out, fit(line, width))
	}
	return strings.Join(out, "\n")
}

// fit truncates or pads a possibly styled line to exactly width cells.
func fit(line string, width int) string {
	w := ansi.StringWidth(line)
	if w > width {
		return ansi.Truncate(line, width, "")
	}
	return line + strings.Repeat(" ", width-w)
}
