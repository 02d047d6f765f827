/*
Copyright © 2026 Finsight Authors
*/
package cli

import (
	"fmt"
	"os"

	"Finsight/internal/config"

	"github.com/spf13/cobra"
)

var (
	setAPIKey    string
	setProvider  string
	setModel     string
	setEndpoint  string
	setDataPath  string
	setOutputDir string
	setLogLevel  string
	show         bool
	global       bool
	local        bool
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure finsight settings",
	Long: `Configure finsight settings like API key, provider, model and file locations.

Configuration can be stored globally or locally:
  --global    Save to ~/.finsight.yaml (user-wide, default)
  --local     Save to ./.finsight.yaml (project-specific)

Local config takes precedence over global config. FINSIGHT_* environment
variables (or a ./.env file) override both.

Examples:
  finsight config --api "sk-xxx" --provider openai --global
  finsight config --data-path ./data/june.csv --local
  finsight config --show                          Show effective configuration
  finsight config --show --local                  Show local project config`,
	Run: func(cmd *cobra.Command, args []string) {
		if show {
			showConfigWithScope()
			return
		}

		if setAPIKey == "" && setProvider == "" && setModel == "" && setEndpoint == "" &&
			setDataPath == "" && setOutputDir == "" && setLogLevel == "" {
			fmt.Println("Error: No configuration option provided.")
			fmt.Println()
			fmt.Println("Available options:")
			fmt.Println("  --api <key>          Set API key")
			fmt.Println("  --provider <name>    Set provider (gemini, openai, anthropic, ollama, ...)")
			fmt.Println("  --model <model>      Set model")
			fmt.Println("  --endpoint <url>     Set a custom API endpoint")
			fmt.Println("  --data-path <file>   Set the transactions CSV")
			fmt.Println("  --output-dir <dir>   Set the chart output directory")
			fmt.Println("  --log-level <level>  Set log level (debug, info, warn, error)")
			fmt.Println("  --show               Show current configuration")
			fmt.Println()
			fmt.Println("Scope options:")
			fmt.Println("  --global             Save to ~/.finsight.yaml (default)")
			fmt.Println("  --local              Save to ./.finsight.yaml (project)")
			os.Exit(1)
		}

		configPath, err := configPathWithScope()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		cfg, err := config.ReadFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not parse existing config, starting fresh: %v\n", err)
			cfg = &config.Config{}
		}

		updates := []struct {
			value string
			dst   *string
			label string
		}{
			{setProvider, &cfg.Provider, "Provider"},
			{setModel, &cfg.Model, "Model"},
			{setEndpoint, &cfg.Endpoint, "Endpoint"},
			{setDataPath, &cfg.DataPath, "Data path"},
			{setOutputDir, &cfg.OutputDir, "Output directory"},
			{setLogLevel, &cfg.LogLevel, "Log level"},
		}
		if setAPIKey != "" {
			cfg.APIKey = setAPIKey
			fmt.Println("✓ API key set")
		}
		for _, u := range updates {
			if u.value != "" {
				*u.dst = u.value
				fmt.Printf("✓ %s set to: %s\n", u.label, u.value)
			}
		}

		if err := cfg.ValidateStored(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := config.WriteFile(configPath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}

		scope := "global"
		if local {
			scope = "local"
		}
		fmt.Printf("\nConfiguration saved to: %s (%s)\n", configPath, scope)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVar(&setAPIKey, "api", "", "API key for the AI provider")
	configCmd.Flags().StringVar(&setProvider, "provider", "", "AI provider (gemini, openai, anthropic, ollama, ...)")
	configCmd.Flags().StringVar(&setModel, "model", "", "AI model to use")
	configCmd.Flags().StringVar(&setEndpoint, "endpoint", "", "Custom API endpoint")
	configCmd.Flags().StringVar(&setDataPath, "data-path", "", "Transactions CSV file")
	configCmd.Flags().StringVar(&setOutputDir, "output-dir", "", "Chart output directory")
	configCmd.Flags().StringVar(&setLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	configCmd.Flags().BoolVar(&show, "show", false, "Show current configuration")
	configCmd.Flags().BoolVar(&global, "global", false, "Use global config (~/.finsight.yaml)")
	configCmd.Flags().BoolVar(&local, "local", false, "Use local config (./.finsight.yaml)")
}

func configPathWithScope() (string, error) {
	if local {
		return config.LocalPath()
	}
	// Default to global
	return config.GlobalPath()
}

func showConfigWithScope() {
	switch {
	case local:
		path, err := config.LocalPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("=== Local Configuration ===")
		fmt.Printf("Config file: %s\n\n", path)
		printStored(path)
	case global:
		path, err := config.GlobalPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("=== Global Configuration ===")
		fmt.Printf("Config file: %s\n\n", path)
		printStored(path)
	default:
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		globalPath, _ := config.GlobalPath()
		localPath, _ := config.LocalPath()
		fmt.Println("=== Effective Configuration ===")
		fmt.Printf("Global: %s\n", globalPath)
		fmt.Printf("Local:  %s\n\n", localPath)
		printConfig(cfg)
	}
}

func printStored(path string) {
	cfg, err := config.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	printConfig(cfg)
}

func printConfig(cfg *config.Config) {
	rows := []struct{ label, value string }{
		{"API Key", cfg.MaskedAPIKey()},
		{"Provider", cfg.Provider},
		{"Model", cfg.Model},
		{"Endpoint", cfg.Endpoint},
		{"Root", cfg.Root},
		{"Data", cfg.DataPath},
		{"Output", cfg.OutputDir},
		{"Log Level", cfg.LogLevel},
		{"Log Format", cfg.LogFormat},
	}
	for _, r := range rows {
		value := r.value
		if value == "" {
			value = "(not set)"
		}
		fmt.Printf("%-11s %s\n", r.label+":", value)
	}
	if cfg.MaxToolRounds > 0 {
		fmt.Printf("%-11s %d\n", "Tool Rounds:", cfg.MaxToolRounds)
	}
}
