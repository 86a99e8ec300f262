package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codelayers/strata/pkg/schema"
)

// ErrDocumentInvalid indicates the document failed schema validation.
var ErrDocumentInvalid = errors.New("document does not match the region schema")

// NewValidateCommand validates a classified document against the
// embedded JSON schema.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a classified document against the schema",
		Long: `Validate checks a JSON document produced by classify, batch or the
HTTP API against the region schema. Pass "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, path, err := readInput(args[0])
			if err != nil {
				return err
			}

			result, err := schema.Validate(doc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if result.Valid() {
				color.New(color.FgGreen).Fprintf(out, "%s is valid\n", path)

				return nil
			}

			red := color.New(color.FgRed)
			red.Fprintf(out, "%s is invalid:\n", path)

			for _, desc := range result.Errors() {
				fmt.Fprintf(out, "  - %s\n", desc)
			}

			return ErrDocumentInvalid
		},
	}
}
