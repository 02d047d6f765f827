package query

import (
	"fmt"
	"strings"

	"Finsight/internal/dataset"

	"github.com/expr-lang/expr"
)

// ErrorPrefix starts every failure message returned by Run.
const ErrorPrefix = "Error executing code:"

// Evaluator runs expressions against a table. The environment holds exactly
// two names: df (the table) and pd (the Toolkit).
type Evaluator struct {
	env map[string]any
}

// NewEvaluator binds frame as df.
func NewEvaluator(frame *dataset.Frame) *Evaluator {
	return &Evaluator{
		env: map[string]any{
			"df": frame,
			"pd": Toolkit{},
		},
	}
}

// Evaluate compiles and runs code, returning the result as text.
func (e *Evaluator) Evaluate(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("empty expression")
	}

	program, err := expr.Compile(code, expr.Env(e.env))
	if err != nil {
		return "", fmt.Errorf("expression error: %w", err)
	}

	result, err := expr.Run(program, e.env)
	if err != nil {
		return "", fmt.Errorf("evaluation error: %w", err)
	}

	return Format(result), nil
}

// Run is Evaluate with every failure folded into the returned text, so the
// caller always gets something it can read back.
func (e *Evaluator) Run(code string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("%s %v", ErrorPrefix, r)
		}
	}()

	result, err := e.Evaluate(code)
	if err != nil {
		return fmt.Sprintf("%s %v", ErrorPrefix, err)
	}
	return result
}

// Format renders an expression result.
func Format(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case float64:
		return dataset.FormatFloat(val)
	case float32:
		return dataset.FormatFloat(float64(val))
	case []float64:
		cells := make([]string, len(val))
		for i, f := range val {
			cells[i] = dataset.FormatFloat(f)
		}
		return "[" + strings.Join(cells, ", ") + "]"
	case []string:
		return "[" + strings.Join(val, ", ") + "]"
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
