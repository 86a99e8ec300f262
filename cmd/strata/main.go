// Package main provides the entry point for the strata CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codelayers/strata/cmd/strata/commands"
	"github.com/codelayers/strata/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "strata",
		Short: "Strata - syntax-origin layer classification for TSX sources",
		Long: `Strata attributes every byte of a TSX source file to the syntax
layer it originates from: the base scripting language, the static-type
extension, the markup extension, or UI-library conventions.

Commands:
  classify  Classify a single file or stdin
  batch     Classify a directory tree
  report    Render an HTML layer report for a directory tree
  diff      Compare the layer partitions of two files
  serve     Expose classification over HTTP
  mcp       Start the MCP server on stdio
  lsp       Start the language server on stdio
  validate  Validate a classified document against the schema`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "path to config file (default: .strata.yaml in CWD or $HOME)")

	rootCmd.AddCommand(
		commands.NewClassifyCommand(),
		commands.NewBatchCommand(),
		commands.NewReportCommand(),
		commands.NewDiffCommand(),
		commands.NewServeCommand(),
		commands.NewMCPCommand(),
		commands.NewLSPCommand(),
		commands.NewValidateCommand(),
		versionCmd(),
	)

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
			fmt.Fprintf(os.Stdout, "strata %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
