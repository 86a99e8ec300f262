package commands

import (
	"github.com/spf13/cobra"

	"github.com/codelayers/strata/pkg/classify"
	"github.com/codelayers/strata/pkg/lsp"
)

// NewLSPCommand runs the language server on stdio.
func NewLSPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server on stdio",
		Long: `LSP starts a language server over stdio that publishes the layer of
every byte as semantic tokens, so editors can highlight sources by
syntax origin.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			lsp.NewServer(classify.NewEngine()).Run()

			return nil
		},
	}
}
