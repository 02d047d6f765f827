/*
Copyright © 2026 Finsight Authors
*/
package cli

import (
	"fmt"
	"os"
	"strings"

	"Finsight/internal/tools"
	"Finsight/pkg/types"

	"github.com/spf13/cobra"
)

var chartInput types.ChartInput

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Draw a bar or pie chart",
	Long: `Chart renders the transactions table through the generate_chart tool.

Bar charts draw one bar per row. Pie charts sum --y per distinct --x value.
The PNG is written to the output directory under a random chart_xxxxxx.png name.

Examples:
  finsight chart --x Description --y Amount --title "All transactions"
  finsight chart --x Category --y Amount --type pie --title "Where the money goes"`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		out := a.chart.Run(chartInput)
		fmt.Println(out)

		if !strings.HasPrefix(out, tools.ChartSavedPrefix) {
			a.Close()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVar(&chartInput.XColumn, "x", "", "Column for bar positions or pie groups")
	chartCmd.Flags().StringVar(&chartInput.YColumn, "y", "", "Numeric column for bar heights or wedge sizes")
	chartCmd.Flags().StringVar(&chartInput.Title, "title", "", "Chart title")
	chartCmd.Flags().StringVar(&chartInput.ChartType, "type", "bar", "Chart type: bar or pie")
	_ = chartCmd.MarkFlagRequired("x")
	_ = chartCmd.MarkFlagRequired("y")
}
