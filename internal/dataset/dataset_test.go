package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const sampleCSV = `Date,Description,Category,Amount,Type
2024-06-01,Monthly Salary,Salary,5000,Revenue
2024-06-03,Rent,Housing,-1500,Expense
2024-06-05,Groceries,Food,-320.5,Expense
2024-06-10,Freelance Project,Salary,1200,Revenue
2024-06-12,Restaurant,Food,-79.5,Expense
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func mustRead(t *testing.T, content string) *Frame {
	t.Helper()
	frame, err := Read(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	return frame
}

func TestLoadWellFormed(t *testing.T) {
	frame := Load(writeCSV(t, sampleCSV), zap.NewNop())

	if frame.Len() != 5 {
		t.Errorf("expected 5 rows, got %d", frame.Len())
	}

	cols := frame.Columns()
	if len(cols) != len(ExpectedColumns) {
		t.Fatalf("expected %d columns, got %v", len(ExpectedColumns), cols)
	}
	for i, name := range ExpectedColumns {
		if cols[i] != name {
			t.Errorf("column %d = %q, want %q", i, cols[i], name)
		}
	}
	if missing := frame.Validate(); len(missing) != 0 {
		t.Errorf("expected no missing columns, got %v", missing)
	}
}

func TestLoadMissingFile(t *testing.T) {
	frame := Load(filepath.Join(t.TempDir(), "nope.csv"), zap.NewNop())

	if frame.Len() != 0 {
		t.Errorf("expected empty table, got %d rows", frame.Len())
	}
	if len(frame.Validate()) != len(ExpectedColumns) {
		t.Errorf("expected every column missing, got %v", frame.Validate())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"bare quote", "Date,Amount\n2024\"06,10\n"},
	}

	for _, tt := range tests {
		frame := Load(writeCSV(t, tt.content), zap.NewNop())
		if frame.Len() != 0 {
			t.Errorf("%s: expected empty table, got %d rows", tt.name, frame.Len())
		}
	}
}

func TestDefaultPath(t *testing.T) {
	got := DefaultPath("/opt/finsight")
	want := filepath.Join("/opt/finsight", "data", "financial_data.csv")
	if got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestInstallRootFromEnv(t *testing.T) {
	t.Setenv(HomeEnv, "/srv/finsight")
	if got := InstallRoot(); got != "/srv/finsight" {
		t.Errorf("InstallRoot() = %q", got)
	}
}

func TestColumnAggregates(t *testing.T) {
	frame := mustRead(t, "Category,Amount\nA,100\nB,-50\nC,200\n")

	col, err := frame.Col("Amount")
	if err != nil {
		t.Fatalf("Col() error: %v", err)
	}

	tests := []struct {
		name string
		fn   func() (float64, error)
		want float64
	}{
		{"sum", col.Sum, 250},
		{"mean", col.Mean, 250.0 / 3},
		{"min", col.Min, -50},
		{"max", col.Max, 200},
	}
	for _, tt := range tests {
		got, err := tt.fn()
		if err != nil {
			t.Errorf("%s error: %v", tt.name, err)
			continue
		}
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}

	if col.Count() != 3 {
		t.Errorf("Count() = %d, want 3", col.Count())
	}
}

func TestSumIsExact(t *testing.T) {
	frame := mustRead(t, "Amount\n0.1\n0.2\n")
	col, _ := frame.Col("Amount")
	sum, err := col.Sum()
	if err != nil {
		t.Fatalf("Sum() error: %v", err)
	}
	if FormatFloat(sum) != "0.3" {
		t.Errorf("Sum() = %s, want 0.3", FormatFloat(sum))
	}
}

func TestColMissing(t *testing.T) {
	frame := mustRead(t, sampleCSV)
	if _, err := frame.Col("Valor"); err == nil {
		t.Fatal("expected error for missing column")
	}
}

func TestSumNonNumeric(t *testing.T) {
	frame := mustRead(t, sampleCSV)
	col, _ := frame.Col("Category")
	if _, err := col.Sum(); err == nil {
		t.Error("expected error summing a text column")
	}
}

func TestFilterAndWhere(t *testing.T) {
	frame := mustRead(t, sampleCSV)

	revenue, err := frame.Where("Type", "Revenue")
	if err != nil {
		t.Fatalf("Where() error: %v", err)
	}
	if revenue.Len() != 2 {
		t.Errorf("expected 2 revenue rows, got %d", revenue.Len())
	}

	large, err := frame.Filter("Amount", "<", -100)
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	if large.Len() != 2 {
		t.Errorf("expected 2 rows below -100, got %d", large.Len())
	}

	if _, err := frame.Filter("Amount", "~", 1); err == nil {
		t.Error("expected error for unknown comparison")
	}
	if frame.Len() != 5 {
		t.Error("filter must not modify the source table")
	}
}

func TestHeadTailSort(t *testing.T) {
	frame := mustRead(t, sampleCSV)

	if frame.Head(2).Len() != 2 {
		t.Errorf("Head(2) rows = %d", frame.Head(2).Len())
	}
	if frame.Head(50).Len() != 5 {
		t.Errorf("Head(50) rows = %d", frame.Head(50).Len())
	}
	if frame.Tail(0).Len() != 0 {
		t.Errorf("Tail(0) rows = %d", frame.Tail(0).Len())
	}

	sorted, err := frame.Sort("Amount", true)
	if err != nil {
		t.Fatalf("Sort() error: %v", err)
	}
	col, _ := sorted.Head(1).Col("Description")
	if got := col.Records()[0]; got != "Monthly Salary" {
		t.Errorf("largest amount row = %q", got)
	}
}

func TestGroupSum(t *testing.T) {
	frame := mustRead(t, sampleCSV)

	groups, err := frame.GroupSum("Category", "Amount")
	if err != nil {
		t.Fatalf("GroupSum() error: %v", err)
	}

	wantKeys := []string{"Food", "Housing", "Salary"}
	wantTotals := []float64{-400, -1500, 6200}
	keys, totals := groups.Keys(), groups.Totals()
	if len(keys) != len(wantKeys) {
		t.Fatalf("keys = %v, want %v", keys, wantKeys)
	}
	for i := range wantKeys {
		if keys[i] != wantKeys[i] || totals[i] != wantTotals[i] {
			t.Errorf("group %d = %s %v, want %s %v", i, keys[i], totals[i], wantKeys[i], wantTotals[i])
		}
	}

	top := groups.Top(1)
	if top.Len() != 1 || top.Keys()[0] != "Salary" {
		t.Errorf("Top(1) = %v", top.Keys())
	}

	if _, err := groups.Get("Travel"); err == nil {
		t.Error("expected error for unknown group")
	}
}

func TestGroupShare(t *testing.T) {
	frame := mustRead(t, "Category,Amount\nA,30\nB,40\nA,30\n")
	groups, err := frame.GroupSum("Category", "Amount")
	if err != nil {
		t.Fatalf("GroupSum() error: %v", err)
	}

	a, _ := groups.Share("A")
	b, _ := groups.Share("B")
	if a != 60 || b != 40 {
		t.Errorf("shares = %v, %v, want 60, 40", a, b)
	}
}

func TestGroupCount(t *testing.T) {
	frame := mustRead(t, sampleCSV)
	groups, err := frame.GroupCount("Type")
	if err != nil {
		t.Fatalf("GroupCount() error: %v", err)
	}
	if n, _ := groups.Get("Expense"); n != 3 {
		t.Errorf("expense count = %v, want 3", n)
	}
}

func TestReadHeaderOnly(t *testing.T) {
	frame := mustRead(t, "Date,Description,Category,Amount,Type\n")

	if frame.Len() != 0 {
		t.Errorf("expected 0 rows, got %d", frame.Len())
	}
	if missing := frame.Validate(); len(missing) != 0 {
		t.Errorf("expected every column present, got missing %v", missing)
	}

	col, err := frame.Col("Amount")
	if err != nil {
		t.Fatalf("Col() error: %v", err)
	}
	if sum, err := col.Sum(); err != nil || sum != 0 {
		t.Errorf("Sum() = %v, %v, want 0", sum, err)
	}

	loaded := Load(writeCSV(t, "Date,Description,Category,Amount,Type\n"), zap.NewNop())
	if len(loaded.Columns()) != len(ExpectedColumns) {
		t.Errorf("Load() columns = %v", loaded.Columns())
	}
}

func TestReadKeepsNAText(t *testing.T) {
	frame := mustRead(t, "Date,Description,Category,Amount,Type\n2024-06-01,NA,N/A,10,Revenue\n2024-06-02,,Food,,Expense\n")

	desc, _ := frame.Col("Description")
	if got := desc.Records(); got[0] != "NA" {
		t.Errorf("Description = %v, want NA kept", got)
	}
	if desc.Count() != 1 {
		t.Errorf("Count() = %d, want the empty cell missing", desc.Count())
	}

	cat, _ := frame.Col("Category")
	if got := cat.Records(); got[0] != "N/A" {
		t.Errorf("Category = %v, want N/A kept", got)
	}

	amount, _ := frame.Col("Amount")
	if sum, err := amount.Sum(); err != nil || sum != 10 {
		t.Errorf("Sum() = %v, %v, want 10", sum, err)
	}
}

func TestNonFiniteAmounts(t *testing.T) {
	frame := mustRead(t, "Category,Amount\nFood,Inf\nRent,10\n")

	col, _ := frame.Col("Amount")
	if _, err := col.Sum(); err == nil || !strings.Contains(err.Error(), "non-finite") {
		t.Errorf("Sum() error = %v, want non-finite error", err)
	}
	if _, err := col.Mean(); err == nil {
		t.Error("Mean() should fail on an infinite cell")
	}
	if _, err := frame.GroupSum("Category", "Amount"); err == nil {
		t.Error("GroupSum() should fail on an infinite cell")
	}
}
