package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
)

// ColorText wraps text with ANSI color codes
func ColorText(text, color string) string {
	return color + text + ColorReset
}

// FormatDuration formats seconds into human readable string
func FormatDuration(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	mins := int(seconds) / 60
	secs := int(seconds) % 60
	return fmt.Sprintf("%dm %ds", mins, secs)
}

// FormatMoney renders an amount with thousands separators and two decimals.
func FormatMoney(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func printBanner(rows int, path string) {
	fmt.Println(ColorText("╔══════════════════════════════════════════════════════════════╗", ColorGreen))
	fmt.Println(ColorText("║", ColorGreen) + ColorText("              📈 FINSIGHT FINANCIAL DATA ANALYST              ", ColorBold) + ColorText("║", ColorGreen))
	fmt.Println(ColorText("╚══════════════════════════════════════════════════════════════╝", ColorGreen))
	if rows == 0 {
		fmt.Println(ColorText(fmt.Sprintf("⚠️  No transactions loaded from %s", path), ColorYellow))
	} else {
		fmt.Printf("Loaded %s transactions from %s\n", humanize.Comma(int64(rows)), path)
	}
	fmt.Println("The analyst is ready! Ask your questions. Type \"exit\" to quit.")
	fmt.Println()
}
