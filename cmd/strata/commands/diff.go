package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/codelayers/strata/pkg/classify"
)

// diffArgCount is the number of files the diff command compares.
const diffArgCount = 2

// NewDiffCommand compares the layer partitions of two files.
func NewDiffCommand() *cobra.Command {
	var (
		full    bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "diff <file-a> <file-b>",
		Short: "Compare the layer partitions of two files",
		Long: `Diff classifies both files, renders each as one annotated line per
region and prints a line diff between the two. A region shows up in the
diff when its text or its layer changed.`,
		Args: cobra.ExactArgs(diffArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}

			engine := classify.NewEngine()

			dumpA, err := annotatedDump(cmd, engine, args[0])
			if err != nil {
				return err
			}

			dumpB, err := annotatedDump(cmd, engine, args[1])
			if err != nil {
				return err
			}

			printDiff(cmd.OutOrStdout(), dumpA, dumpB, full)

			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "print unchanged regions as well")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI colors")

	return cmd
}

// annotatedDump classifies one file and renders it as one line per
// region, "layer<TAB>quoted-text".
func annotatedDump(cmd *cobra.Command, engine *classify.Engine, path string) (string, error) {
	src, _, err := readInput(path)
	if err != nil {
		return "", err
	}

	regions, err := engine.Classify(cmd.Context(), src)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	for _, r := range regions {
		fmt.Fprintf(&sb, "%s\t%q\n", r.Layer, src[r.Start:r.End])
	}

	return sb.String(), nil
}

// printDiff runs a line-mode diff over the two dumps and writes it with
// the usual -/+ markers.
func printDiff(w io.Writer, dumpA, dumpB string, full bool) {
	dmp := diffmatchpatch.New()

	charsA, charsB, lines := dmp.DiffLinesToChars(dumpA, dumpB)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(charsA, charsB, false), lines)

	removed := color.New(color.FgRed)
	added := color.New(color.FgGreen)

	changes := 0

	for _, d := range diffs {
		for _, line := range splitDiffLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				removed.Fprintf(w, "- %s\n", line)

				changes++
			case diffmatchpatch.DiffInsert:
				added.Fprintf(w, "+ %s\n", line)

				changes++
			case diffmatchpatch.DiffEqual:
				if full {
					fmt.Fprintf(w, "  %s\n", line)
				}
			}
		}
	}

	if changes == 0 {
		fmt.Fprintln(w, "Layer partitions are identical.")
	}
}

// splitDiffLines splits diff text into lines, dropping the trailing
// empty element the final newline produces.
func splitDiffLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
