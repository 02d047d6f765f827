package mcp

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"Finsight/internal/chart"
	"Finsight/internal/dataset"
	"Finsight/internal/tools"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const transactions = `Date,Description,Category,Amount,Type
2024-06-01,Monthly Salary,Salary,5000,Revenue
2024-06-03,Rent,Housing,1500,Expense
2024-06-05,Groceries,Food,250,Expense
`

func connect(t *testing.T) (*mcp.ClientSession, string) {
	t.Helper()
	ctx := context.Background()

	frame, err := dataset.Read(strings.NewReader(transactions))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	dir := filepath.Join(t.TempDir(), "graphics")
	srv := NewServer(
		tools.NewAnalyzeTool(frame),
		tools.NewChartTool(frame, chart.NewRenderer(dir)),
		"test",
		nil,
	)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ss, err := srv.Connect(ctx, serverTransport)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { cs.Close() })

	return cs, dir
}

func callText(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool(%s) error: %v", name, err)
	}
	if len(res.Content) != 1 {
		t.Fatalf("expected 1 content block, got %d", len(res.Content))
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text, res.IsError
}

func TestListTools(t *testing.T) {
	cs, _ := connect(t)

	res, err := cs.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools() error: %v", err)
	}
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	if len(names) != 2 || names[0] != tools.AnalyzeName || names[1] != tools.ChartName {
		t.Errorf("unexpected tools %v", names)
	}
}

func TestAnalyzeOverMCP(t *testing.T) {
	cs, _ := connect(t)

	text, isError := callText(t, cs, tools.AnalyzeName, map[string]any{"code": `df.Col("Amount").Sum()`})
	if text != "6750" || isError {
		t.Errorf("analyze = %q (error %v)", text, isError)
	}

	text, isError = callText(t, cs, tools.AnalyzeName, map[string]any{"code": `df.Col("Valor").Sum()`})
	if !strings.HasPrefix(text, "Error executing code:") || !isError {
		t.Errorf("analyze error = %q (error %v)", text, isError)
	}
}

func TestChartOverMCP(t *testing.T) {
	cs, dir := connect(t)

	text, isError := callText(t, cs, tools.ChartName, map[string]any{
		"x_column":   "Category",
		"y_column":   "Amount",
		"title":      "Spending",
		"chart_type": "pie",
	})
	if !strings.HasPrefix(text, tools.ChartSavedPrefix) || isError {
		t.Fatalf("chart = %q (error %v)", text, isError)
	}
	if _, err := os.Stat(strings.TrimPrefix(text, tools.ChartSavedPrefix)); err != nil {
		t.Errorf("chart file missing: %v", err)
	}

	text, isError = callText(t, cs, tools.ChartName, map[string]any{
		"x_column":   "Category",
		"y_column":   "Amount",
		"chart_type": "scatter",
	})
	if !strings.Contains(text, "not supported") || !isError {
		t.Errorf("unsupported chart = %q (error %v)", text, isError)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected 1 file, got %d", len(entries))
	}
}
