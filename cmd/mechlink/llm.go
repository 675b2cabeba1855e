package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mechforge/mechlink/pkg/llm"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Probe the local inference server",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the inference server is reachable and report its model",
	Run: func(cmd *cobra.Command, args []string) {
		endpoint, _ := cmd.Flags().GetString("endpoint")
		if endpoint == "" {
			endpoint = os.Getenv("OPENAI_API_BASE")
		}
		if endpoint == "" {
			fmt.Println("no endpoint: pass --endpoint or set OPENAI_API_BASE")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		model, err := llm.NewResolver().DiscoverModel(ctx, endpoint)
		if err != nil {
			fmt.Printf("✗ %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ %s is serving %s\n", endpoint, model)
	},
}

func init() {
	llmCheckCmd.Flags().String("endpoint", "", "Inference server base URL (default: OPENAI_API_BASE)")
	llmCmd.AddCommand(llmCheckCmd)
	rootCmd.AddCommand(llmCmd)
}
