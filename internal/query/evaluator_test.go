package query

import (
	"strings"
	"testing"

	"Finsight/internal/dataset"
)

const transactions = `Date,Description,Category,Amount,Type
2024-06-01,Monthly Salary,Salary,100,Revenue
2024-06-03,Rent,Housing,-50,Expense
2024-06-10,Freelance Project,Salary,200,Revenue
`

func newEvaluator(t *testing.T, csv string) *Evaluator {
	t.Helper()
	frame, err := dataset.Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	return NewEvaluator(frame)
}

func TestEvaluatorRun(t *testing.T) {
	ev := newEvaluator(t, transactions)

	tests := []struct {
		input    string
		expected string
	}{
		{`df.Col("Amount").Sum()`, "250"},
		{`df.Len()`, "3"},
		{`df.Col("Amount").Max()`, "200"},
		{`df.Where("Type", "Revenue").Col("Amount").Sum()`, "300"},
		{`df.Filter("Amount", "<", 0).Len()`, "1"},
		{`df.GroupSum("Category", "Amount").Get("Salary")`, "300"},
		{`df.Col("Category").Unique()`, "[Salary, Housing]"},
		{`df.Col("Amount").Sum() / df.Len()`, "83.33333333333333"},
		{`pd.Round(df.Col("Amount").Mean(), 2)`, "83.33"},
		{`pd.Comma(15000)`, "15,000"},
		{`pd.Pct(df.GroupSum("Type", "Amount").Get("Expense"), df.Col("Amount").Sum())`, "-20"},
		{`len(df.Columns())`, "5"},
	}

	for _, tt := range tests {
		result := ev.Run(tt.input)
		if result != tt.expected {
			t.Errorf("Run(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestEvaluatorErrors(t *testing.T) {
	ev := newEvaluator(t, transactions)

	inputs := []string{
		`df.Col("Valor").Sum()`,
		`undefined_name + 1`,
		`os.Exit(1)`,
		`df.Col("Category").Sum()`,
		`df.Filter("Amount", "like", 1)`,
		`df.Col(`,
		``,
	}

	for _, input := range inputs {
		result := ev.Run(input)
		if !strings.HasPrefix(result, ErrorPrefix) {
			t.Errorf("Run(%q) = %q, want prefix %q", input, result, ErrorPrefix)
		}
	}
}

func TestEvaluatorEmptyTable(t *testing.T) {
	ev := NewEvaluator(dataset.Empty())

	if got := ev.Run(`df.Len()`); got != "0" {
		t.Errorf("Len on empty table = %q", got)
	}
	if got := ev.Run(`df.Col("Amount").Sum()`); !strings.HasPrefix(got, ErrorPrefix) {
		t.Errorf("missing column on empty table = %q", got)
	}
}

func TestEvaluateReturnsError(t *testing.T) {
	ev := newEvaluator(t, transactions)
	if _, err := ev.Evaluate(`df.Col("Nope")`); err == nil {
		t.Error("expected error from Evaluate")
	}
}

func TestToolkitMoney(t *testing.T) {
	got, err := Toolkit{}.Money(15000)
	if err != nil {
		t.Fatalf("Money() error: %v", err)
	}
	if got != "15,000.00" {
		t.Errorf("Money(15000) = %q", got)
	}
	if _, err := (Toolkit{}).Money("abc"); err == nil {
		t.Error("expected error for non-number")
	}
}
