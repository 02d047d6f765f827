package chart

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"Finsight/internal/dataset"
)

const transactions = `Date,Description,Category,Amount,Type
2024-06-01,Monthly Salary,Salary,5000,Revenue
2024-06-03,Rent,Housing,1500,Expense
2024-06-05,Groceries,Food,250,Expense
2024-06-12,Restaurant,Food,150,Expense
`

var chartName = regexp.MustCompile(`^chart_[0-9a-f]{6}\.png$`)

func mustFrame(t *testing.T, csv string) *dataset.Frame {
	t.Helper()
	frame, err := dataset.Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	return frame
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRenderUnsupportedType(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "graphics")
	r := NewRenderer(dir)

	_, err := r.Render(mustFrame(t, transactions), Request{X: "Category", Y: "Amount", Type: "line"})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("output directory should not be created for a rejected request")
	}
}

func TestRenderBar(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "graphics")
	r := NewRenderer(dir)

	path, err := r.Render(mustFrame(t, transactions), Request{
		X:     "Description",
		Y:     "Amount",
		Title: "Amounts",
		Type:  Bar,
	})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	names := listDir(t, dir)
	if len(names) != 1 {
		t.Fatalf("expected 1 file, got %v", names)
	}
	if !chartName.MatchString(names[0]) {
		t.Errorf("file name %q does not match %s", names[0], chartName)
	}
	if filepath.Base(path) != names[0] {
		t.Errorf("returned path %q, file on disk %q", path, names[0])
	}
}

func TestRenderDefaultsToBar(t *testing.T) {
	r := NewRenderer(t.TempDir())
	if _, err := r.Render(mustFrame(t, transactions), Request{X: "Category", Y: "Amount"}); err != nil {
		t.Fatalf("Render() with empty type error: %v", err)
	}
}

func TestRenderPie(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)

	path, err := r.Render(mustFrame(t, transactions), Request{X: "Category", Y: "Amount", Type: Pie})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat chart: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestRenderDistinctFiles(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)
	frame := mustFrame(t, transactions)

	first, err := r.Render(frame, Request{X: "Category", Y: "Amount", Type: Pie})
	if err != nil {
		t.Fatalf("first Render() error: %v", err)
	}
	second, err := r.Render(frame, Request{X: "Category", Y: "Amount", Type: Pie})
	if err != nil {
		t.Fatalf("second Render() error: %v", err)
	}
	if first == second {
		t.Errorf("both charts written to %s", first)
	}
	if names := listDir(t, dir); len(names) != 2 {
		t.Errorf("expected 2 files, got %v", names)
	}
}

func TestRenderErrors(t *testing.T) {
	frame := mustFrame(t, transactions)
	negative := mustFrame(t, `Date,Description,Category,Amount,Type
2024-06-01,Rent,Housing,-1500,Expense
`)

	tests := []struct {
		name  string
		frame *dataset.Frame
		req   Request
	}{
		{"missing x", frame, Request{X: "Nope", Y: "Amount", Type: Bar}},
		{"missing y", frame, Request{X: "Category", Y: "Nope", Type: Pie}},
		{"text y", frame, Request{X: "Category", Y: "Type", Type: Bar}},
		{"empty table", dataset.Empty(), Request{X: "Category", Y: "Amount", Type: Bar}},
		{"negative wedge", negative, Request{X: "Category", Y: "Amount", Type: Pie}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if _, err := NewRenderer(dir).Render(tt.frame, tt.req); err == nil {
				t.Fatal("expected error")
			}
			if names := listDir(t, dir); len(names) != 0 {
				t.Errorf("expected no files, got %v", names)
			}
		})
	}
}

func TestSlices(t *testing.T) {
	slices, err := Slices([]string{"A", "B"}, []float64{60, 40}, StartAngle)
	if err != nil {
		t.Fatalf("Slices() error: %v", err)
	}
	if len(slices) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(slices))
	}

	total := 0.0
	for _, s := range slices {
		total += s.Share
	}
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("shares sum to %v", total)
	}

	if got := slices[0].ShareLabel(); got != "60.0%" {
		t.Errorf("first label = %q", got)
	}
	if got := slices[1].ShareLabel(); got != "40.0%" {
		t.Errorf("second label = %q", got)
	}

	start := StartAngle * math.Pi / 180
	if math.Abs(slices[0].Start-start) > 1e-9 {
		t.Errorf("first wedge starts at %v, want %v", slices[0].Start, start)
	}
	if math.Abs(slices[1].Start-(slices[0].Start+slices[0].Sweep)) > 1e-9 {
		t.Error("wedges are not contiguous")
	}
}

func TestSlicesRejects(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		values []float64
	}{
		{"empty", nil, nil},
		{"zero total", []string{"A"}, []float64{0}},
		{"negative", []string{"A", "B"}, []float64{10, -5}},
		{"length mismatch", []string{"A"}, []float64{1, 2}},
		{"infinite", []string{"A", "B"}, []float64{math.Inf(1), 10}},
	}
	for _, tt := range tests {
		if _, err := Slices(tt.labels, tt.values, StartAngle); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}
