package commands

import (
	"github.com/spf13/cobra"

	"github.com/codelayers/strata/pkg/classify"
	"github.com/codelayers/strata/pkg/mcp"
)

// NewMCPCommand runs the MCP server on stdio.
func NewMCPCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server on stdio",
		Long: `MCP starts a Model Context Protocol server over stdio exposing the
classifier as tools, so agents can classify TSX snippets without
shelling out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := mcp.NewServer(classify.NewEngine(), mcp.ServerDeps{
				Logger: newLogger(debug),
			})

			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	return cmd
}
