/*
Copyright © 2026 Finsight Authors
*/
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"Finsight/internal/agent"
	"Finsight/internal/config"
	"Finsight/internal/memory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	chatPrompt   string
	chatProvider string
	chatModel    string
	chatSession  string
	chatContinue bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask the analyst about your transactions",
	Long: `Chat starts an interactive session with the financial analyst agent.

The agent answers by running expressions over the transactions table and
draws charts on request. Type "exit" or "quit" to leave.

Model Override:
  --provider    Override the configured provider (gemini, openai, anthropic, ollama, groq, ...)
  --model       Override the configured model

Examples:
  finsight chat
  finsight chat --prompt "What were my three biggest expense categories?"
  finsight chat --provider ollama --model llama3.1
  finsight chat --continue                 Resume the most recent session
  finsight chat --session 3f9a1c2e         Resume a saved session`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		if chatProvider != "" && chatProvider != a.cfg.Provider {
			a.cfg.Provider = chatProvider
			a.cfg.APIKey = "" // key belongs to the configured provider
		}
		if chatModel != "" {
			a.cfg.Model = chatModel
		}

		if err := ensureAPIKey(a.cfg, os.Stdin); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		client := agent.NewLLMClient(a.cfg.Provider, a.cfg.Model, a.cfg.APIKey, a.cfg.Endpoint)
		analyst := agent.NewAnalyst(client, a.registry, a.log.Logger)
		analyst.MaxRounds = a.cfg.MaxToolRounds

		store := memory.DefaultStore()
		if err := store.Cleanup(); err != nil {
			a.log.Warn("session cleanup failed", zap.Error(err))
		}
		session, err := openSession(store, a.cfg.DataPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		analyst.Conversation.Restore(session.Turns)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		rec := &recorder{store: store, session: session, conversation: analyst.Conversation, log: a.log.Logger}

		if chatPrompt != "" {
			if err := ask(ctx, analyst, chatPrompt); err != nil {
				printAskError(err)
				os.Exit(1)
			}
			rec.save()
			return
		}

		printBanner(a.frame.Len(), a.cfg.DataPath)
		if len(session.Turns) > 0 {
			fmt.Println(ColorText(fmt.Sprintf("Resumed session %s (%d earlier questions)", session.ID, len(session.Turns)), ColorDim))
			fmt.Println()
		}
		runChat(ctx, analyst, os.Stdin, rec.save)
		if len(session.Turns) > 0 {
			fmt.Println(ColorText("Session saved: "+session.ID+" (resume with 'finsight chat --session "+session.ID+"')", ColorDim))
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatPrompt, "prompt", "p", "", "Ask a single question and exit")
	chatCmd.Flags().StringVar(&chatProvider, "provider", "", "Override provider (e.g., gemini, openai, ollama)")
	chatCmd.Flags().StringVar(&chatModel, "model", "", "Override model (e.g., gemini-2.0-flash, llama3.1)")
	chatCmd.Flags().StringVar(&chatSession, "session", "", "Resume a saved session by ID")
	chatCmd.Flags().BoolVarP(&chatContinue, "continue", "c", false, "Resume the most recent session")
	chatCmd.MarkFlagsMutuallyExclusive("session", "continue")
}

// openSession returns the session named by --session or --continue, or a
// fresh one for dataPath.
func openSession(store *memory.Store, dataPath string) (*memory.Session, error) {
	switch {
	case chatSession != "":
		return store.Load(chatSession)
	case chatContinue:
		latest, err := store.Latest()
		if err != nil {
			return nil, err
		}
		if latest != nil {
			return latest, nil
		}
	}
	return memory.NewSession(dataPath), nil
}

// recorder appends the latest answered turn to its session and saves it.
type recorder struct {
	store        *memory.Store
	session      *memory.Session
	conversation *agent.Conversation
	log          *zap.Logger
}

func (r *recorder) save() {
	history := r.conversation.History
	if len(history) == 0 {
		return
	}
	r.session.Append(history[len(history)-1])
	if err := r.store.Save(r.session); err != nil {
		r.log.Warn("failed to save session", zap.String("session", r.session.ID), zap.Error(err))
	}
}

// runChat reads questions from in until exit, EOF or cancellation. onAnswer,
// when set, runs after every successful answer.
func runChat(ctx context.Context, analyst *agent.Analyst, in io.Reader, onAnswer func()) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Print(ColorText("You: ", ColorBold))

		var line string
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case l, ok := <-lines:
			if !ok {
				fmt.Println()
				return
			}
			line = strings.TrimSpace(l)
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return
		}

		if err := ask(ctx, analyst, line); err != nil {
			if ctx.Err() != nil {
				fmt.Println()
				return
			}
			printAskError(err)
			continue
		}
		if onAnswer != nil {
			onAnswer()
		}
	}
}

func ask(ctx context.Context, analyst *agent.Analyst, question string) error {
	start := time.Now()
	answer, err := analyst.Ask(ctx, question)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(ColorText("Analyst: ", ColorCyan+ColorBold) + answer.Text)
	for _, path := range answer.Charts {
		fmt.Println(ColorText("📊 Chart: ", ColorGreen) + path)
	}
	fmt.Println(ColorText(fmt.Sprintf("(%d tool rounds, %s)", answer.Rounds, FormatDuration(time.Since(start).Seconds())), ColorDim))
	fmt.Println()
	return nil
}

func printAskError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	errStr := err.Error()
	if strings.Contains(errStr, "QUOTA_EXCEEDED") {
		fmt.Fprintln(os.Stderr, ColorText("💡 Tip: quota reached. Wait a moment or switch provider with --provider.", ColorYellow))
	}
	if strings.Contains(errStr, "API key") {
		fmt.Fprintln(os.Stderr, ColorText("💡 Tip: check your key with 'finsight config --show'.", ColorYellow))
	}
}

// ensureAPIKey fills cfg.APIKey from the provider's environment variable,
// or asks for it on in and offers to save it.
func ensureAPIKey(cfg *config.Config, in io.Reader) error {
	envKey := agent.APIKeyEnv(cfg.Provider)
	if envKey == "" || cfg.APIKey != "" {
		return nil
	}

	if envVal := os.Getenv(envKey); envVal != "" {
		cfg.APIKey = envVal
		return nil
	}

	fmt.Printf("API key required for %s\n", cfg.Provider)
	fmt.Printf("Enter API key (or set %s environment variable): ", envKey)

	reader := bufio.NewReader(in)
	apiKey, err := reader.ReadString('\n')
	if err != nil && apiKey == "" {
		return fmt.Errorf("failed to read API key: %w", err)
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("API key is required for %s", cfg.Provider)
	}
	cfg.APIKey = apiKey

	fmt.Print("Save this API key to config? (y/n): ")
	answer, _ := reader.ReadString('\n')
	if strings.ToLower(strings.TrimSpace(answer)) == "y" {
		if err := saveAPIKey(cfg.Provider, apiKey); err != nil {
			fmt.Printf("Warning: Could not save config: %v\n", err)
		} else {
			fmt.Println("✓ API key saved to global config")
		}
	}
	return nil
}

func saveAPIKey(provider, apiKey string) error {
	path, err := config.GlobalPath()
	if err != nil {
		return err
	}
	stored, err := config.ReadFile(path)
	if err != nil {
		return err
	}
	stored.APIKey = apiKey
	stored.Provider = provider
	return config.WriteFile(path, stored)
}
