package tools

import (
	"fmt"
	"regexp"
	"strings"

	"Finsight/internal/logging"

	"go.uber.org/zap"
)

// ToolCall represents a parsed tool invocation from LLM output
type ToolCall struct {
	Name  string
	Input string
}

// ToolResult represents the result of a tool execution
type ToolResult struct {
	ToolName string
	Output   string
	Error    error
}

// Format: ```tool:<name>\n<input>\n```
var toolCallPattern = regexp.MustCompile("(?s)```tool:([a-zA-Z_][a-zA-Z0-9_]*)[ \t]*\r?\n(.*?)```")

// ParseToolCalls extracts tool calls from LLM response, in order
func ParseToolCalls(response string) []ToolCall {
	matches := toolCallPattern.FindAllStringSubmatch(response, -1)

	var calls []ToolCall
	for _, match := range matches {
		if len(match) >= 3 {
			calls = append(calls, ToolCall{
				Name:  strings.TrimSpace(match[1]),
				Input: strings.TrimSpace(match[2]),
			})
		}
	}
	return calls
}

// Execute runs all parsed tool calls and returns one result per call
func (r *Registry) Execute(calls []ToolCall) []ToolResult {
	results := make([]ToolResult, 0, len(calls))

	for _, call := range calls {
		tool, ok := r.Get(call.Name)
		if !ok {
			r.log.Warn("unknown tool requested", zap.String("tool", call.Name))
			results = append(results, ToolResult{
				ToolName: call.Name,
				Error:    fmt.Errorf("unknown tool: %s", call.Name),
			})
			continue
		}

		output, err := tool.Execute(call.Input)
		r.log.Debug("tool executed",
			zap.String("tool", call.Name),
			zap.String("input", logging.Truncate(call.Input, 100)),
			zap.String("output", logging.Truncate(output, 200)),
			zap.Error(err),
		)
		results = append(results, ToolResult{
			ToolName: call.Name,
			Output:   output,
			Error:    err,
		})
	}

	return results
}

// FormatToolResults creates a string describing tool results for LLM
func FormatToolResults(results []ToolResult) string {
	if len(results) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n\n=== Tool Results ===\n")

	for _, r := range results {
		sb.WriteString(fmt.Sprintf("\n[%s]:\n", r.ToolName))
		if r.Error != nil {
			sb.WriteString(fmt.Sprintf("ERROR: %v\n", r.Error))
		} else {
			sb.WriteString(r.Output)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// HasToolCalls checks if a response contains tool calls
func HasToolCalls(response string) bool {
	return toolCallPattern.MatchString(response)
}

// StripToolCalls removes tool call blocks, leaving the prose around them
func StripToolCalls(response string) string {
	return strings.TrimSpace(toolCallPattern.ReplaceAllString(response, ""))
}
