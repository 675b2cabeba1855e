package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mechforge/mechlink/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mechlink",
	Short: "Contract-layer utilities for the mechanical design agent pipeline",
	Long:  `mechlink inspects and renders versioned prompt templates and probes the local inference server the design agents talk to.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("prompts-dir", "", "Prompts root directory (default: PROMPTS_DIR)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}

// newLogger builds the CLI logger from the --log-level flag.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.New(logging.ParseLevel(level))
}

// promptsDir resolves the prompts root from the flag or the environment.
func promptsDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("prompts-dir")
	if dir != "" {
		return dir, nil
	}
	if dir = os.Getenv("PROMPTS_DIR"); dir != "" {
		return dir, nil
	}
	return "", fmt.Errorf("no prompts directory: pass --prompts-dir or set PROMPTS_DIR")
}
