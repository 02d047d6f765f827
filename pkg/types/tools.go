package types

// AnalyzeInput is the argument of the analyze_data tool.
type AnalyzeInput struct {
	Code string `json:"code" jsonschema:"expression to evaluate, with df bound to the transactions table and pd to the numeric toolkit"`
}

// ChartInput is the argument of the generate_chart tool.
type ChartInput struct {
	XColumn   string `json:"x_column" jsonschema:"column used for bar positions or pie groups"`
	YColumn   string `json:"y_column" jsonschema:"numeric column used for bar heights or wedge sizes"`
	Title     string `json:"title,omitempty" jsonschema:"chart title"`
	ChartType string `json:"chart_type,omitempty" jsonschema:"bar or pie, defaults to bar"`
}

// GetChartType returns the requested chart type, bar when unset.
func (c *ChartInput) GetChartType() string {
	if c.ChartType == "" {
		return "bar"
	}
	return c.ChartType
}
