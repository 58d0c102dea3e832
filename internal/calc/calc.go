// Package calc holds the calculator's display and expression buffers and
// evaluates expressions with CEL.
package calc

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// ErrorDisplay is shown after a failed evaluation.
const ErrorDisplay = "Error"

var (
	// ErrEmpty is returned when there is nothing to evaluate.
	ErrEmpty = errors.New("empty expression")
	// ErrNotFinite is returned for results such as division by zero.
	ErrNotFinite = errors.New("result is not a finite number")
)

// numberLiteral matches the numeric literals a user can type.
var numberLiteral = regexp.MustCompile(`\d*\.\d*|\d+`)

var symbolReplacer = strings.NewReplacer("×", "*", "÷", "/", "−", "-")

// Evaluator compiles arithmetic expressions with an empty CEL environment.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates an evaluator.
func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Normalize maps display operators to ASCII and forces every literal to a
// double so that 7/2 evaluates to 3.5 rather than integer division.
func Normalize(expr string) string {
	expr = symbolReplacer.Replace(strings.TrimSpace(expr))
	return numberLiteral.ReplaceAllStringFunc(expr, func(lit string) string {
		switch {
		case lit == ".":
			return lit
		case strings.HasPrefix(lit, "."):
			lit = "0" + lit
		}
		if strings.HasSuffix(lit, ".") {
			return lit + "0"
		}
		if !strings.Contains(lit, ".") {
			return lit + ".0"
		}
		return lit
	})
}

// Evaluate returns the numeric value of expr.
func (e *Evaluator) Evaluate(expr string) (float64, error) {
	if strings.TrimSpace(expr) == "" {
		return 0, ErrEmpty
	}
	ast, issues := e.env.Compile(Normalize(expr))
	if issues != nil && issues.Err() != nil {
		return 0, fmt.Errorf("compilation error: %w", issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return 0, fmt.Errorf("program error: %w", err)
	}
	out, _, err := prg.Eval(map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("eval error: %w", err)
	}
	v, err := toFloat(out)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrNotFinite
	}
	return v, nil
}

func toFloat(v ref.Val) (float64, error) {
	switch n := v.(type) {
	case types.Double:
		return float64(n), nil
	case types.Int:
		return float64(n), nil
	case types.Uint:
		return float64(n), nil
	}
	return 0, fmt.Errorf("unexpected result type %T", v.Value())
}

// Format renders a result without a trailing ".0".
func Format(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
