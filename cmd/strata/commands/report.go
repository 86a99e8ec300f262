package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codelayers/strata/pkg/render"
	"github.com/codelayers/strata/pkg/report"
)

// defaultReportPath is where the HTML report lands when --out is unset.
const defaultReportPath = "strata-report.html"

// NewReportCommand classifies a directory and writes an HTML layer
// report.
func NewReportCommand() *cobra.Command {
	var (
		out     string
		workers int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "report <dir>",
		Short: "Render an HTML layer report for a directory tree",
		Long: `Report classifies every TSX file under a directory and renders the
aggregate layer distribution plus a per-file breakdown as a
self-contained HTML page.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("workers") {
				workers = cfg.Batch.Workers
			}

			results, err := runBatch(cmd, cfg, batchOptions{
				root:    args[0],
				workers: workers,
				noCache: noCache,
			})
			if err != nil {
				return err
			}

			docs := make([]render.Document, 0, len(results))

			for _, res := range results {
				if res.Err != nil {
					continue
				}

				docs = append(docs, res.Document)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}

			if err = report.Write(f, docs); err != nil {
				_ = f.Close()

				return err
			}

			if err = f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (%d files)\n", out, len(docs))

			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", defaultReportPath, "report output path")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent classifications (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the region cache")

	return cmd
}
