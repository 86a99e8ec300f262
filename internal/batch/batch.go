// Package batch classifies whole directory trees: it discovers TSX
// sources, skips vendored code, fans work out to a bounded worker pool
// and serves unchanged files from the region cache.
package batch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/src-d/enry/v2"

	"github.com/codelayers/strata/pkg/cache"
	"github.com/codelayers/strata/pkg/classify"
	"github.com/codelayers/strata/pkg/render"
)

// tsxLanguage is the enry language name accepted by the runner.
const tsxLanguage = "TSX"

// sniffLen bounds how many bytes of a candidate file feed the language
// heuristics.
const sniffLen = 8 << 10

// Options configures a Runner.
type Options struct {
	// Workers bounds concurrent classifications; 0 means GOMAXPROCS.
	Workers int
	// MaxFileSize skips files larger than this many bytes; 0 disables
	// the limit.
	MaxFileSize int64
	// Store is the optional region cache; nil disables caching.
	Store *cache.Store
	// Logger receives per-file progress; nil uses slog.Default.
	Logger *slog.Logger
}

// Result is the classification of one file.
type Result struct {
	Document  render.Document
	FromCache bool
	Err       error
}

// Runner classifies directory trees.
type Runner struct {
	engine *classify.Engine
	opts   Options
	log    *slog.Logger
}

// NewRunner creates a Runner around one shared engine.
func NewRunner(engine *classify.Engine, opts Options) *Runner {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}

	return &Runner{engine: engine, opts: opts, log: log}
}

// Run classifies every TSX file under root and returns results ordered
// by path. Unreadable or oversized files are skipped with a log line,
// not an error; the returned error covers only tree traversal failures.
func (r *Runner) Run(ctx context.Context, root string) ([]Result, error) {
	files, err := r.discover(root)
	if err != nil {
		return nil, err
	}

	jobs := make(chan string)
	out := make(chan Result, len(files))

	var wg sync.WaitGroup

	for range r.opts.Workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for p := range jobs {
				out <- r.classifyFile(ctx, p)
			}
		}()
	}

	for _, p := range files {
		select {
		case jobs <- p:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()

			return nil, fmt.Errorf("batch: %w", ctx.Err())
		}
	}

	close(jobs)
	wg.Wait()
	close(out)

	results := make([]Result, 0, len(files))
	for res := range out {
		results = append(results, res)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Document.Path < results[j].Document.Path
	})

	return results, nil
}

// discover walks root collecting classifiable file paths.
func (r *Runner) discover(root string) ([]string, error) {
	var files []string

	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if enry.IsVendor(d.Name() + "/") {
				return filepath.SkipDir
			}

			return nil
		}

		if enry.IsVendor(p) {
			return nil
		}

		if !strings.EqualFold(filepath.Ext(p), ".tsx") {
			return nil
		}

		if r.isTSX(p) {
			files = append(files, p)
		}

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("batch: walk %s: %w", root, walkErr)
	}

	return files, nil
}

// isTSX confirms a .tsx candidate really is TSX. The extension alone is
// ambiguous to enry (it also maps to XML), so a content sample drives the
// heuristics; unreadable files are left for classifyFile to report.
func (r *Runner) isTSX(p string) bool {
	f, err := os.Open(p)
	if err != nil {
		return true
	}
	defer f.Close()

	head, err := io.ReadAll(io.LimitReader(f, sniffLen))
	if err != nil {
		return true
	}

	return enry.GetLanguage(path.Base(p), head) == tsxLanguage
}

func (r *Runner) classifyFile(ctx context.Context, p string) Result {
	if r.opts.MaxFileSize > 0 {
		if info, err := os.Stat(p); err == nil && info.Size() > r.opts.MaxFileSize {
			r.log.Warn("skipping oversized file", "path", p, "size", info.Size())

			return Result{Document: render.Document{Path: p}}
		}
	}

	src, err := os.ReadFile(p)
	if err != nil {
		r.log.Warn("skipping unreadable file", "path", p, "error", err)

		return Result{Document: render.Document{Path: p}, Err: err}
	}

	if r.opts.Store != nil {
		if regions, ok := r.opts.Store.Get(src); ok {
			return Result{
				Document:  render.NewDocument(p, len(src), regions),
				FromCache: true,
			}
		}
	}

	regions, err := r.engine.Classify(ctx, src)
	if err != nil {
		r.log.Warn("classification failed", "path", p, "error", err)

		return Result{Document: render.Document{Path: p}, Err: err}
	}

	if r.opts.Store != nil {
		if putErr := r.opts.Store.Put(src, regions); putErr != nil {
			r.log.Warn("cache write failed", "path", p, "error", putErr)
		}
	}

	return Result{Document: render.NewDocument(p, len(src), regions)}
}
