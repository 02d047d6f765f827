/*
Copyright © 2026 Finsight Authors
*/
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	cfgFile       string
	verbose       bool
	enableLogging bool
	rootDir       string
	dataPath      string
	outputDir     string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "finsight",
	Short:   "A financial data analyst for the command line",
	Version: version,
	Long: `Finsight answers questions about a CSV of financial transactions.

An LLM agent computes every figure with the analyze_data tool and draws
bar or pie charts with generate_chart. The same tools can be used
directly or served to other agents over MCP.

Examples:
  finsight chat                                      Start an interactive session
  finsight chat --prompt "What did I spend on food?" Ask a single question
  finsight query 'df.Col("Amount").Sum()'            Evaluate an expression
  finsight chart --x Category --y Amount --type pie  Draw a chart
  finsight serve                                     Run the MCP server on stdio`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "extra config file, applied after ~/.finsight.yaml and ./.finsight.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log tool calls and LLM rounds")
	rootCmd.PersistentFlags().BoolVar(&enableLogging, "log", false, "also write a session log to ~/.finsight/logs")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "install root holding data/ and graphics/ (default $FINSIGHT_HOME or the executable's directory)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "transactions CSV (default <root>/data/financial_data.csv)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output", "", "chart output directory (default <root>/graphics)")
}
