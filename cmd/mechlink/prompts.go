package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mechforge/mechlink/pkg/prompt"
	"github.com/spf13/cobra"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Inspect and render prompt templates",
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available prompt identifiers",
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(cmd)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		category, _ := cmd.Flags().GetString("category")
		for _, id := range engine.List(category) {
			fmt.Println(id)
		}
	},
}

var promptsShowCmd = &cobra.Command{
	Use:   "show <prompt-id>",
	Short: "Show the metadata of a prompt template",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(cmd)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		md, err := engine.Metadata(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("prompt_id:     %s\n", md.PromptID)
		fmt.Printf("version:       %s\n", md.Version)
		if md.Description != "" {
			fmt.Printf("description:   %s\n", md.Description)
		}
		if md.Author != "" {
			fmt.Printf("author:        %s\n", md.Author)
		}
		if md.OutputSchema != "" {
			fmt.Printf("output_schema: %s\n", md.OutputSchema)
		}
		if len(md.Tags) > 0 {
			fmt.Printf("tags:          %s\n", strings.Join(md.Tags, ", "))
		}
	},
}

var promptsRenderCmd = &cobra.Command{
	Use:   "render <prompt-id>",
	Short: "Render a prompt template with --var key=value context",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(cmd)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		vars, _ := cmd.Flags().GetStringArray("var")
		context := make(map[string]any, len(vars))
		for _, v := range vars {
			key, value, ok := strings.Cut(v, "=")
			if !ok {
				fmt.Printf("invalid --var %q: expected key=value\n", v)
				os.Exit(1)
			}
			context[key] = value
		}
		out, err := engine.Render(args[0], context)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

func newEngine(cmd *cobra.Command) (*prompt.Engine, error) {
	dir, err := promptsDir(cmd)
	if err != nil {
		return nil, err
	}
	return prompt.New(dir, prompt.WithLogger(newLogger(cmd)))
}

func init() {
	promptsListCmd.Flags().String("category", "", "Only list prompts in this category")
	promptsRenderCmd.Flags().StringArray("var", nil, "Template variable as key=value (repeatable)")
	promptsCmd.AddCommand(promptsListCmd, promptsShowCmd, promptsRenderCmd)
	rootCmd.AddCommand(promptsCmd)
}
