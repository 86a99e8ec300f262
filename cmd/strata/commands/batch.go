package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/codelayers/strata/internal/batch"
	"github.com/codelayers/strata/internal/config"
	"github.com/codelayers/strata/pkg/cache"
	"github.com/codelayers/strata/pkg/classify"
	"github.com/codelayers/strata/pkg/render"
)

// ErrBatchFailures indicates at least one file in the tree could not be
// classified.
var ErrBatchFailures = errors.New("batch finished with failures")

// NewBatchCommand classifies every TSX file under a directory.
func NewBatchCommand() *cobra.Command {
	var (
		format  string
		output  string
		workers int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Classify every TSX file under a directory",
		Long: `Batch walks a directory tree, classifies each TSX file and prints a
per-file layer summary. Vendored paths such as node_modules are
skipped. Unchanged files are served from the region cache.`,
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

			out, closeOut, err := openOutput(output)
			if err != nil {
				return err
			}

			if err = writeBatchResults(out, results, format); err != nil {
				return err
			}

			if err = closeOut(); err != nil {
				return err
			}

			for _, res := range results {
				if res.Err != nil {
					return fmt.Errorf("%w: see log for details", ErrBatchFailures)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultBatchWorkers, "concurrent classifications (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the region cache")

	return cmd
}

// batchOptions carries the resolved flag values into runBatch.
type batchOptions struct {
	root    string
	workers int
	noCache bool
}

// runBatch wires config and flags into a Runner and executes it.
func runBatch(cmd *cobra.Command, cfg *config.Config, opts batchOptions) ([]batch.Result, error) {
	var store *cache.Store

	if cfg.Cache.Enabled && !opts.noCache {
		var err error

		store, err = cache.NewStore(cfg.Cache.Dir)
		if err != nil {
			return nil, err
		}
	}

	runner := batch.NewRunner(classify.NewEngine(), batch.Options{
		Workers:     opts.workers,
		MaxFileSize: cfg.Batch.MaxFileSize,
		Store:       store,
		Logger:      newLogger(false),
	})

	return runner.Run(cmd.Context(), opts.root)
}

// writeBatchResults prints results in the requested format.
func writeBatchResults(w io.Writer, results []batch.Result, format string) error {
	switch format {
	case "json":
		docs := make([]render.Document, 0, len(results))
		for _, res := range results {
			docs = append(docs, res.Document)
		}

		return encodeBatchJSON(w, docs)
	case "table":
		return writeBatchTable(w, results)
	default:
		return fmt.Errorf("%w: %q", render.ErrUnknownFormat, format)
	}
}

// encodeBatchJSON writes the document list as indented JSON.
func encodeBatchJSON(w io.Writer, docs []render.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	return nil
}

// writeBatchTable prints one row per file plus totals.
func writeBatchTable(w io.Writer, results []batch.Result) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Format.Footer = text.FormatDefault

	tbl.AppendHeader(table.Row{"File", "Size", "Regions", "Dominant layer", "Cached"})

	var totalBytes, totalRegions int

	for _, res := range results {
		doc := res.Document

		dominant := "-"
		if len(doc.Summary) > 0 {
			dominant = fmt.Sprintf("%s (%.1f%%)", doc.Summary[0].Layer, doc.Summary[0].Share*100)
		}

		cached := ""
		if res.FromCache {
			cached = "yes"
		}

		if res.Err != nil {
			dominant = "error"
		}

		tbl.AppendRow(table.Row{
			doc.Path,
			humanize.Bytes(uint64(doc.Length)), //nolint:gosec // lengths are non-negative
			len(doc.Regions),
			dominant,
			cached,
		})

		totalBytes += doc.Length
		totalRegions += len(doc.Regions)
	}

	tbl.AppendFooter(table.Row{
		fmt.Sprintf("%d files", len(results)),
		humanize.Bytes(uint64(totalBytes)), //nolint:gosec // lengths are non-negative
		totalRegions,
		"",
		"",
	})

	tbl.Render()

	return nil
}
