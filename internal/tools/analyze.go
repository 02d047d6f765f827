package tools

import (
	"strings"

	"Finsight/internal/dataset"
	"Finsight/internal/query"
)

// AnalyzeName is the tool name the analyst uses for computations.
const AnalyzeName = "analyze_data"

// AnalyzeTool evaluates expressions over the transactions table
type AnalyzeTool struct {
	evaluator *query.Evaluator
}

// NewAnalyzeTool binds the tool to frame.
func NewAnalyzeTool(frame *dataset.Frame) *AnalyzeTool {
	return &AnalyzeTool{evaluator: query.NewEvaluator(frame)}
}

func (a *AnalyzeTool) Name() string {
	return AnalyzeName
}

func (a *AnalyzeTool) Description() string {
	return `Run a calculation over the transactions table. The input is one expression. ` +
		`"df" is the table with columns Date, Description, Category, Amount and Type. ` +
		`Table methods: Len(), Columns(), Col(name), Filter(col, op, value), Where(col, value), ` +
		`Sort(col, desc), Head(n), Tail(n), GroupSum(by, col), GroupCount(by). ` +
		`Column methods: Sum(), Mean(), Min(), Max(), Count(), Unique(), Values(). ` +
		`Group methods: Keys(), Totals(), Get(key), Share(key), Top(n). ` +
		`"pd" provides Round(x, places), Pct(part, total), Abs(x), Comma(x) and Money(x). ` +
		`Example: df.Where("Type", "Expense").GroupSum("Category", "Amount").Top(3)`
}

// Execute never fails; evaluation errors come back as text.
func (a *AnalyzeTool) Execute(input string) (string, error) {
	return a.Run(input), nil
}

// Run evaluates code, stripping a surrounding code fence if the caller sent one.
func (a *AnalyzeTool) Run(code string) string {
	return a.evaluator.Run(stripFence(code))
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	// Drop a language tag on the opening line.
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.ContainsAny(s[:i], "().\"") {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}
