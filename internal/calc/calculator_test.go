package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalc(t *testing.T) *Calculator {
	t.Helper()
	c, err := New()
	require.NoError(t, err)
	return c
}

func TestCalculatorSevenPlusEight(t *testing.T) {
	c := newCalc(t)
	for _, tok := range []string{"7", "+", "8"} {
		c.Append(tok)
	}
	assert.Equal(t, "7+8", c.Expression())

	got, err := c.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "15", got)
	assert.Equal(t, "15", c.Display())
	assert.Equal(t, "15", c.Expression(), "result seeds the next expression")
}

func TestCalculatorLeadingZeroReplaced(t *testing.T) {
	c := newCalc(t)
	assert.Equal(t, "0", c.Display())
	c.Append("5")
	assert.Equal(t, "5", c.Display())
	c.Append("0")
	assert.Equal(t, "50", c.Display())

	c.Clear()
	c.Append(".")
	assert.Equal(t, "0.", c.Display())
}

func TestCalculatorErrorClearsExpression(t *testing.T) {
	c := newCalc(t)
	c.Append("9")
	c.Append("÷")
	c.Append("0")

	got, err := c.Evaluate()
	require.Error(t, err)
	assert.Equal(t, ErrorDisplay, got)
	assert.Empty(t, c.Expression())

	c.Append("4")
	assert.Equal(t, "4", c.Display())
}

func TestCalculatorEmptyEvaluatesToZero(t *testing.T) {
	c := newCalc(t)
	got, err := c.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "0", got)
}

func TestCalculatorDeleteLast(t *testing.T) {
	c := newCalc(t)
	c.Append("1")
	c.Append("×")
	c.Append("2")

	c.DeleteLast()
	assert.Equal(t, "1×", c.Display())
	assert.Equal(t, "1×", c.Expression())
	c.DeleteLast()
	c.DeleteLast()
	assert.Equal(t, "0", c.Display())
	assert.Empty(t, c.Expression())
}
