/*
Copyright © 2026 Finsight Authors
*/
package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"Finsight/internal/logging"
	"Finsight/internal/memory"

	"github.com/spf13/cobra"
)

var showFull bool

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved chat sessions",
	Long:  `List, view, and manage saved chat sessions.`,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved sessions",
	Run: func(cmd *cobra.Command, args []string) {
		sessions, err := memory.DefaultStore().List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing sessions: %v\n", err)
			os.Exit(1)
		}

		if len(sessions) == 0 {
			fmt.Println("No saved sessions found.")
			fmt.Println("Run 'finsight chat' to create a session.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATA\tQUESTIONS\tLAST UPDATED")
		fmt.Fprintln(w, "--\t----\t---------\t------------")

		for _, s := range sessions {
			ago := time.Since(s.UpdatedAt).Round(time.Minute)
			fmt.Fprintf(w, "%s\t%s\t%d\t%s ago\n", s.ID, s.DataPath, len(s.Turns), ago)
		}
		w.Flush()
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the questions and answers of a session",
	Long: `Show the questions and answers of a saved session.

Use --full to display complete answers instead of truncated ones.

Examples:
  finsight sessions show 3f9a1c2e
  finsight sessions show 3f9a1c2e --full`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		session, err := memory.DefaultStore().Load(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading session: %v\n", err)
			os.Exit(1)
		}

		fmt.Println()
		fmt.Println("╔═══════════════════════════════════════════════════════════╗")
		fmt.Printf("║  📋 Session: %-44s ║\n", session.ID)
		fmt.Printf("║  📁 Data: %-47s ║\n", logging.Truncate(session.DataPath, 44))
		fmt.Printf("║  🕐 Created: %-44s ║\n", session.CreatedAt.Format("Jan 02 15:04"))
		fmt.Printf("║  💬 Questions: %-42d ║\n", len(session.Turns))
		fmt.Println("╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()

		for i, turn := range session.Turns {
			answer := turn.Answer
			if !showFull {
				answer = logging.Truncate(answer, 300)
			}

			fmt.Printf("┌──────────────────────────────────────────────────────────────┐\n")
			fmt.Printf("│ Q%d %s\n", i+1, turn.Question)
			fmt.Printf("│ 🕐 %s\n", turn.Timestamp.Format("15:04:05"))
			fmt.Printf("├──────────────────────────────────────────────────────────────┤\n")
			for _, line := range strings.Split(answer, "\n") {
				fmt.Printf("│ %s\n", line)
			}
			for _, path := range turn.Charts {
				fmt.Printf("│ 📊 %s\n", path)
			}
			fmt.Printf("└──────────────────────────────────────────────────────────────┘\n\n")
		}
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := memory.DefaultStore().Delete(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting session: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Session %s deleted.\n", args[0])
	},
}

var sessionsCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove expired and excess sessions",
	Run: func(cmd *cobra.Command, args []string) {
		if err := memory.DefaultStore().Cleanup(); err != nil {
			fmt.Fprintf(os.Stderr, "Error cleaning sessions: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Sessions cleaned up.")
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsCleanCmd)

	sessionsShowCmd.Flags().BoolVarP(&showFull, "full", "f", false, "Show complete answers")
}
