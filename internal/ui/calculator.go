package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"github.com/easyface/easyface/internal/calc"
	"github.com/easyface/easyface/internal/focus"
)

// calcKeyWidth is the label width of one calculator key.
const calcKeyWidth = 5

type keypadKey struct {
	id     string
	label  string
	token  string
	spoken string
}

var calcKeys = map[string]keypadKey{
	"calc-clear": {id: "calc-clear", label: "C", spoken: "clear"},
	"calc-back":  {id: "calc-back", label: "⌫", spoken: "delete"},
	"calc-div":   {id: "calc-div", label: "÷", token: "÷", spoken: "divided by"},
	"calc-mul":   {id: "calc-mul", label: "×", token: "×", spoken: "times"},
	"calc-sub":   {id: "calc-sub", label: "−", token: "−", spoken: "minus"},
	"calc-add":   {id: "calc-add", label: "+", token: "+", spoken: "plus"},
	"calc-eq":    {id: "calc-eq", label: "=", spoken: "equals"},
	"calc-dot":   {id: "calc-dot", label: ".", token: ".", spoken: "point"},
}

func init() {
	for d := '0'; d <= '9'; d++ {
		id := "calc-" + string(d)
		calcKeys[id] = keypadKey{id: id, label: string(d), token: string(d), spoken: string(d)}
	}
}

// calcSlots is the keypad: "0" spans two columns and "=" two rows.
var calcSlots = [][]string{
	{"calc-clear", "calc-back", "calc-div", "calc-mul"},
	{"calc-7", "calc-8", "calc-9", "calc-sub"},
	{"calc-4", "calc-5", "calc-6", "calc-add"},
	{"calc-1", "calc-2", "calc-3", "calc-eq"},
	{"calc-0", "calc-0", "calc-dot", "calc-eq"},
}

// typedTokens maps keyboard characters to calculator input.
var typedTokens = map[string]string{
	"+": "+", "-": "−", "*": "×", "x": "×", "/": "÷", ".": ".", ",": ".",
}

type calcState struct {
	calc *calc.Calculator
	grid *focus.Grid
}

func (m *Model) initCalc(sink focus.Sink) {
	c, err := calc.New()
	if err != nil {
		m.log.Error(err, "calculator unavailable")
	}
	m.calc = calcState{calc: c, grid: focus.NewGrid(domainCalc, calcSlots, sink)}
}

func (m *Model) calcButton(p painter, id string, width, lines int) piece {
	k := calcKeys[id]
	return p.button(control{id: id, label: k.label, domain: domainCalc, width: width, lines: lines})
}

func (m *Model) calcView(p painter, _ int) piece {
	if m.calc.calc == nil {
		return textPiece(p.st.status(true), "The calculator is not available.")
	}
	// one key is calcKeyWidth + padding + border wide
	keyW := calcKeyWidth + 2*p.st.scale.pad + 2
	padW := 4*keyW + 3
	display := m.calc.calc.Display()
	expr := m.calc.calc.Expression()
	inner := padW - 2 - 2*p.st.scale.pad
	screenView := p.st.box(controlState{}).Render(
		runewidth.FillLeft(runewidth.Truncate(expr, inner, "…"), inner) + "\n" +
			runewidth.FillLeft(runewidth.Truncate(display, inner, "…"), inner))

	var rows []piece
	for _, r := range calcSlots[:3] {
		var keys []piece
		for _, id := range r {
			keys = append(keys, m.calcButton(p, id, calcKeyWidth, 0))
		}
		rows = append(rows, hjoin(1, keys...))
	}
	wideW := 2*keyW + 1 - 2 - 2*p.st.scale.pad
	left := vjoin(
		hjoin(1, m.calcButton(p, "calc-1", calcKeyWidth, 0), m.calcButton(p, "calc-2", calcKeyWidth, 0), m.calcButton(p, "calc-3", calcKeyWidth, 0)),
		hjoin(1, m.calcButton(p, "calc-0", wideW, 0), m.calcButton(p, "calc-dot", calcKeyWidth, 0)),
	)
	rows = append(rows, hjoin(1, left, m.calcButton(p, "calc-eq", calcKeyWidth, 4)))
	return vjoin(append([]piece{{view: screenView}}, rows...)...)
}

func (m *Model) activateCalc(id string) error {
	c := m.calc.calc
	k, ok := calcKeys[id]
	if !ok || c == nil {
		return fmt.Errorf("activate: unknown calculator control %q", id)
	}
	m.click()
	switch id {
	case "calc-clear":
		c.Clear()
		m.speak(k.spoken)
	case "calc-back":
		c.DeleteLast()
	case "calc-eq":
		m.evaluate()
	default:
		c.Append(k.token)
		m.speak(k.spoken)
	}
	return nil
}

func (m *Model) evaluate() {
	display, err := m.calc.calc.Evaluate()
	if err != nil {
		m.log.V(1).Info("calculation failed", "error", err.Error())
		m.fail("Calculation error")
		m.speak("Calculation error")
		return
	}
	m.speak("Result: " + display)
}

// calcKey handles keys while the keypad has focus: arrows move the grid,
// typed digits and operators append, Enter activates the focused key.
func (m *Model) calcKey(msg tea.KeyPressMsg) bool {
	c := m.calc.calc
	if c == nil || (m.focused != "" && !m.calc.grid.Contains(m.focused)) {
		return false
	}
	switch key := msg.String(); key {
	case "up":
		m.calc.grid.Move(-1, 0)
	case "down":
		m.calc.grid.Move(1, 0)
	case "left":
		m.calc.grid.Move(0, -1)
	case "right":
		m.calc.grid.Move(0, 1)
	case "enter", "space":
		if m.focused != "" {
			m.activateLogged(m.focused)
		} else {
			m.evaluate()
		}
	case "=":
		m.evaluate()
	case "backspace":
		c.DeleteLast()
	case "delete":
		c.Clear()
	default:
		text := strings.ToLower(msg.Text)
		if len(text) == 1 && text[0] >= '0' && text[0] <= '9' {
			c.Append(text)
			return true
		}
		if tok, ok := typedTokens[text]; ok {
			c.Append(tok)
			return true
		}
		return false
	}
	return true
}
