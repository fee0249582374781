package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for llmsgen.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llmsgen",
		Short: "Generate llms.txt files from a documentation website",
		Long: `llmsgen crawls a website and converts its pages to markdown, producing
the llms.txt artifact family: a curated index (llms.txt), a full-text
concatenation (llms-full.txt), and one markdown file per crawled page.

Only pages on the seed URL's host are crawled, and a politeness delay is
enforced before every request.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
