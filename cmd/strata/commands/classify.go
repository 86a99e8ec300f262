package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codelayers/strata/internal/config"
	"github.com/codelayers/strata/pkg/classify"
	"github.com/codelayers/strata/pkg/render"
)

// NewClassifyCommand classifies a single file (or stdin) and prints the
// result in the selected format.
func NewClassifyCommand() *cobra.Command {
	var (
		format  string
		palette string
		output  string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "classify <file>",
		Short: "Classify a single TSX file or stdin",
		Long: `Classify attributes every byte of one TSX source file to its syntax
layer. Pass "-" to read from stdin.

Text output repaints the source with one ANSI style per layer; json,
yaml and table output serialize the region list instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("format") {
				format = cfg.Render.Format
			}

			if !cmd.Flags().Changed("palette") {
				palette = cfg.Render.Palette
			}

			if !cmd.Flags().Changed("no-color") {
				noColor = cfg.Render.NoColor
			}

			src, path, err := readInput(args[0])
			if err != nil {
				return err
			}

			regions, err := classify.NewEngine().Classify(cmd.Context(), src)
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(output)
			if err != nil {
				return err
			}

			if format == "text" {
				if noColor {
					color.NoColor = true
				}

				painter, paintErr := render.NewPainter(palette)
				if paintErr != nil {
					return paintErr
				}

				if paintErr = painter.Paint(out, src, regions); paintErr != nil {
					return paintErr
				}

				return closeOut()
			}

			data, err := render.Format(render.NewDocument(path, len(src), regions), format)
			if err != nil {
				return err
			}

			if _, err = out.Write(data); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			return closeOut()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", config.DefaultRenderFormat, "output format: text, json, yaml, table")
	cmd.Flags().StringVarP(&palette, "palette", "p", config.DefaultRenderPalette, "text palette: default, bright, mono")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI colors in text output")

	return cmd
}
