package tools

import (
	"encoding/json"
	"fmt"

	"Finsight/internal/chart"
	"Finsight/internal/dataset"
	"Finsight/pkg/types"

	"github.com/kaptinlin/jsonrepair"
)

// ChartName is the tool name the analyst uses for visualisations.
const ChartName = "generate_chart"

// ChartSavedPrefix starts the reply of a successful chart call, followed by
// the file path.
const ChartSavedPrefix = "Chart generated and saved to: "

// ChartTool renders bar and pie charts of the transactions table
type ChartTool struct {
	frame    *dataset.Frame
	renderer *chart.Renderer
}

// NewChartTool binds the tool to frame, writing files through renderer.
func NewChartTool(frame *dataset.Frame, renderer *chart.Renderer) *ChartTool {
	return &ChartTool{frame: frame, renderer: renderer}
}

func (c *ChartTool) Name() string {
	return ChartName
}

func (c *ChartTool) Description() string {
	return `Create a chart image from the transactions table. The input is a JSON object ` +
		`{"x_column": "...", "y_column": "...", "title": "...", "chart_type": "bar" | "pie"}. ` +
		`"bar" draws one bar per row; "pie" sums y_column per distinct x_column value. ` +
		`Returns the path of the saved PNG file.`
}

// Execute decodes the JSON request, repairing it first if needed. Failures
// come back as text.
func (c *ChartTool) Execute(input string) (string, error) {
	req, err := decodeChartInput(input)
	if err != nil {
		return fmt.Sprintf("Error generating chart: %v", err), nil
	}
	return c.Run(req), nil
}

// Run renders req and describes the outcome. It never panics.
func (c *ChartTool) Run(req types.ChartInput) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("Error generating chart: %v", r)
		}
	}()

	chartType := req.GetChartType()
	if !chart.Supported(chartType) {
		return fmt.Sprintf("Error: chart type '%s' is not supported. Use 'bar' or 'pie'.", chartType)
	}
	if req.XColumn == "" || req.YColumn == "" {
		return "Error generating chart: x_column and y_column are required"
	}

	path, err := c.renderer.Render(c.frame, chart.Request{
		X:     req.XColumn,
		Y:     req.YColumn,
		Title: req.Title,
		Type:  chartType,
	})
	if err != nil {
		return fmt.Sprintf("Error generating chart: %v", err)
	}
	return ChartSavedPrefix + path
}

func decodeChartInput(input string) (types.ChartInput, error) {
	var req types.ChartInput
	if err := json.Unmarshal([]byte(input), &req); err == nil {
		return req, nil
	}

	repaired, err := jsonrepair.JSONRepair(stripFence(input))
	if err != nil {
		return req, fmt.Errorf("invalid chart request: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &req); err != nil {
		return req, fmt.Errorf("invalid chart request: %w", err)
	}
	return req, nil
}
