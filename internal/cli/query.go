/*
Copyright © 2026 Finsight Authors
*/
package cli

import (
	"fmt"
	"os"
	"strings"

	"Finsight/internal/query"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <expression>",
	Short: "Evaluate an analysis expression",
	Long: `Query runs one expression through the analyze_data tool and prints the result.

"df" is the transactions table and "pd" the numeric toolkit.

Examples:
  finsight query 'df.Col("Amount").Sum()'
  finsight query 'df.Where("Type", "Expense").GroupSum("Category", "Amount").Top(3)'
  finsight query 'pd.Money(df.Where("Type", "Revenue").Col("Amount").Sum())'`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		out := a.analyze.Run(strings.Join(args, " "))
		fmt.Println(out)

		if strings.HasPrefix(out, query.ErrorPrefix) {
			a.Close()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
