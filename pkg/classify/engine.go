// Package classify implements the syntax-origin classification engine: a
// pre-order walk of the TSX syntax tree emitting candidate origin-tagged
// ranges, resolved into a single non-overlapping partition of the
// document.
//
// Every byte of a source file is attributed to one of four layered syntax
// origins: the base scripting language, the static-type extension, the
// markup extension, or the UI-library convention layer. Library detection
// is a purely name-based heuristic; the engine never resolves imports or
// performs semantic binding.
package classify

import (
	"context"
	"fmt"

	"github.com/codelayers/strata/pkg/layer"
	"github.com/codelayers/strata/pkg/syntax"
)

// Engine classifies TSX documents. It is safe for concurrent use: all
// per-document state lives in a per-call collector.
type Engine struct {
	parser *syntax.Parser
}

// NewEngine creates an Engine with a pooled TSX parser.
func NewEngine() *Engine {
	return &Engine{parser: syntax.NewParser()}
}

// Classify parses src and returns the ordered, non-overlapping layer
// partition. Empty input yields an empty sequence, not an error.
// Malformed input never fails: the parse is error-tolerant and
// unclassifiable positions are simply gaps.
func (e *Engine) Classify(ctx context.Context, src []byte) ([]layer.Region, error) {
	if len(src) == 0 {
		return nil, nil
	}

	tree, err := e.parser.Parse(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	defer tree.Close()

	col := newCollector(src)
	col.walk(tree.Root())
	col.scanComments(tree.Root())

	return layer.Resolve(col.candidates, len(src)), nil
}
