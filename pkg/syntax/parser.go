// Package syntax wraps the tree-sitter TSX grammar behind a pooled,
// concurrency-safe parser and provides the lexical angle-bracket matcher
// used to locate type-argument spans not represented as tree nodes.
package syntax

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexaandru/go-sitter-forest/tsx"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// Sentinel errors for parser operations.
var (
	errPoolType   = errors.New("syntax: pool returned unexpected type")
	errNoRootNode = errors.New("syntax: no root node")
)

// Parser parses TSX source into error-tolerant syntax trees. It is safe
// for concurrent use; underlying tree-sitter parsers are pooled.
type Parser struct {
	pool sync.Pool
}

// NewParser creates a Parser bound to the TSX grammar. The markup-enabled
// dialect is used deliberately: bare generic-looking angle brackets parse
// as JSX, a documented property of the chosen parse mode.
func NewParser() *Parser {
	lang := sitter.NewLanguage(tsx.GetLanguage())

	return &Parser{
		pool: sync.Pool{
			New: func() any {
				tsParser := sitter.NewParser()
				tsParser.SetLanguage(lang)

				return tsParser
			},
		},
	}
}

// Tree is a parsed TSX document. Close releases the underlying
// tree-sitter tree; the source slice remains valid afterwards.
type Tree struct {
	inner  *sitter.Tree
	source []byte
}

// Parse parses src and returns its syntax tree. The parse is
// error-tolerant: malformed input still yields a tree with error nodes,
// never a failure. An error is returned only when tree-sitter itself
// cannot produce a tree.
func (p *Parser) Parse(ctx context.Context, src []byte) (*Tree, error) {
	tsParser, ok := p.pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}

	defer p.pool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("syntax: parse failed: %w", err)
	}

	if tree.RootNode().IsNull() {
		tree.Close()

		return nil, errNoRootNode
	}

	return &Tree{inner: tree, source: src}, nil
}

// Root returns the root node of the tree.
func (t *Tree) Root() sitter.Node {
	return t.inner.RootNode()
}

// Source returns the source bytes the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.source
}

// Close releases the tree-sitter tree.
func (t *Tree) Close() {
	t.inner.Close()
}

// Text returns the source text covered by n.
func (t *Tree) Text(n sitter.Node) string {
	return n.Content(t.source)
}

// Start returns n's start byte offset as an int.
func Start(n sitter.Node) int {
	return int(n.StartByte())
}

// End returns n's end byte offset as an int.
func End(n sitter.Node) int {
	return int(n.EndByte())
}
