package calc

import "strings"

// Calculator keeps what the user sees apart from what gets evaluated.
type Calculator struct {
	eval       *Evaluator
	display    string
	expression string
}

// New returns a cleared calculator.
func New() (*Calculator, error) {
	ev, err := NewEvaluator()
	if err != nil {
		return nil, err
	}
	return &Calculator{eval: ev, display: "0"}, nil
}

// Display is the text shown on the calculator screen.
func (c *Calculator) Display() string { return c.display }

// Expression is the pending input.
func (c *Calculator) Expression() string { return c.expression }

// Append adds a digit, point or operator. A lone "0" or an error indicator
// is replaced by a digit rather than extended.
func (c *Calculator) Append(token string) {
	if token == "" {
		return
	}
	if (c.display == "0" || c.display == ErrorDisplay) && isDigits(token) {
		c.display = token
	} else {
		c.display += token
	}
	c.expression += token
}

// Clear resets both buffers.
func (c *Calculator) Clear() {
	c.display = "0"
	c.expression = ""
}

// DeleteLast removes one rune from both buffers, falling back to "0".
func (c *Calculator) DeleteLast() {
	if len([]rune(c.display)) <= 1 {
		c.Clear()
		return
	}
	c.display = trimLastRune(c.display)
	c.expression = trimLastRune(c.expression)
}

// Evaluate computes the expression. On success the result becomes the new
// expression; on failure the display shows ErrorDisplay and the expression
// is cleared. An empty expression displays "0".
func (c *Calculator) Evaluate() (string, error) {
	if strings.TrimSpace(c.expression) == "" {
		c.display = "0"
		return c.display, nil
	}
	v, err := c.eval.Evaluate(c.expression)
	if err != nil {
		c.display = ErrorDisplay
		c.expression = ""
		return c.display, err
	}
	c.display = Format(v)
	c.expression = c.display
	return c.display, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func trimLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
