// Package main provides the entry point for the condense CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/condense/cmd/condense/commands"
	"github.com/Sumatoshi-tech/condense/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "condense",
		Short: "Condense - conciseness rewrites for C# sources",
		Long: `Condense finds statements and expressions that reduce to a more
concise, semantics-preserving form and proposes the rewrite.

Rules:
  if-assign   if/else assigning one target -> conditional expression
  find-first  Any/First pair -> FirstOrDefault`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewFixCommand())
	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "condense %s (commit: %s, built: %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}
