// Package main provides the career_mentor CLI: the HTTP API server plus
// offline commands over the same views.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "career_mentor",
	Short: "AI Career Mentor",
	Long:  "AI Career Mentor serves the career guidance API: admin activity logs, career suggestions, a simulated mentor chat and resume upload.",
	// Usage is noise for runtime failures; flag errors still print it.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config (default $CONFIG_PATH or ./config.yaml)")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
