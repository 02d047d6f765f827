/*
Copyright © 2026 Finsight Authors
*/
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"Finsight/internal/mcp"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyst tools over MCP on stdio",
	Long: `Serve runs a Model Context Protocol server on stdin/stdout exposing
analyze_data and generate_chart, so other agents can analyse the same
transactions table. Logs go to stderr.

Example MCP client entry:
  {"command": "finsight", "args": ["serve", "--data", "/path/to/financial_data.csv"]}`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		server := mcp.NewServer(a.analyze, a.chart, version, a.log.Logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := server.Run(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "Error running MCP server: %v\n", err)
			a.Close()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
