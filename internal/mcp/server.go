package mcp

import (
	"context"
	"fmt"
	"strings"

	"Finsight/internal/logging"
	"Finsight/internal/query"
	"Finsight/internal/tools"
	"Finsight/pkg/types"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Server exposes the analyst tools over the Model Context Protocol
type Server struct {
	server  *mcp.Server
	analyze *tools.AnalyzeTool
	chart   *tools.ChartTool
	log     *zap.Logger
}

// NewServer registers analyze_data and generate_chart on a new MCP server
func NewServer(analyze *tools.AnalyzeTool, chart *tools.ChartTool, version string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "finsight",
			Version: version,
		}, nil),
		analyze: analyze,
		chart:   chart,
		log:     log,
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        analyze.Name(),
		Description: analyze.Description(),
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        chart.Name(),
		Description: chart.Description(),
	}, s.handleChart)

	return s
}

// Run serves on stdio until ctx is done or the client disconnects
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("mcp server listening on stdio")
	if err := s.server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

// Connect serves a single session over transport
func (s *Server) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, transport, nil)
}

func (s *Server) handleAnalyze(ctx context.Context, req *mcp.CallToolRequest, in types.AnalyzeInput) (*mcp.CallToolResult, any, error) {
	out := s.analyze.Run(in.Code)
	s.logCall(s.analyze.Name(), in.Code, out)
	return textResult(out, strings.HasPrefix(out, query.ErrorPrefix)), nil, nil
}

func (s *Server) handleChart(ctx context.Context, req *mcp.CallToolRequest, in types.ChartInput) (*mcp.CallToolResult, any, error) {
	out := s.chart.Run(in)
	s.logCall(s.chart.Name(), fmt.Sprintf("%s/%s %s", in.XColumn, in.YColumn, in.GetChartType()), out)
	return textResult(out, !strings.HasPrefix(out, tools.ChartSavedPrefix)), nil, nil
}

func (s *Server) logCall(tool, input, output string) {
	s.log.Debug("mcp tool call",
		zap.String("tool", tool),
		zap.String("input", logging.Truncate(input, 100)),
		zap.String("output", logging.Truncate(output, 200)),
	)
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isError,
	}
}
