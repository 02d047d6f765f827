/*
Copyright © 2026 Finsight Authors
*/
package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"Finsight/internal/dataset"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var inspectRows int

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarise the loaded transactions table",
	Long: `Inspect prints the data file in use, its columns, any expected columns
that are missing, totals per transaction type and the first rows.

Examples:
  finsight inspect
  finsight inspect --data ./june.csv --rows 10`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		printInspection(a.frame, a.cfg.DataPath, inspectRows)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVarP(&inspectRows, "rows", "n", 5, "Number of rows to preview")
}

func printInspection(frame *dataset.Frame, path string, rows int) {
	fmt.Println(ColorText("=== Transactions ===", ColorBold))
	fmt.Printf("File:    %s\n", path)
	fmt.Printf("Rows:    %s\n", humanize.Comma(int64(frame.Len())))
	fmt.Printf("Columns: %s\n", strings.Join(frame.Columns(), ", "))

	if missing := frame.Validate(); len(missing) > 0 {
		fmt.Println(ColorText("Missing: "+strings.Join(missing, ", "), ColorYellow))
	}

	if groups, err := frame.GroupSum("Type", "Amount"); err == nil && groups.Len() > 0 {
		fmt.Println()
		fmt.Println(ColorText("=== Totals by Type ===", ColorBold))
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
		keys, totals := groups.Keys(), groups.Totals()
		for i := range keys {
			fmt.Fprintf(w, "%s\t%s\t\n", keys[i], FormatMoney(totals[i]))
		}
		fmt.Fprintf(w, "%s\t%s\t\n", "Net", FormatMoney(groups.Total()))
		w.Flush()
	}

	if rows > 0 && frame.Len() > 0 {
		fmt.Println()
		fmt.Println(ColorText("=== Preview ===", ColorBold))
		fmt.Println(frame.Head(rows))
	}
}
