package classify

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/codelayers/strata/pkg/layer"
)

// scanComments is the second, independent walk: it extracts comment
// trivia anywhere in the tree and tags it base layer. Comments are extra
// nodes the error-tolerant parse attaches between regular nodes, so they
// are not claimed by the node-category rules of the main walk.
func (c *collector) scanComments(n sitter.Node) {
	if n.IsNull() {
		return
	}

	if n.Type() == "comment" {
		c.emitNode(n, layer.Base)

		return
	}

	for idx := range n.ChildCount() {
		c.scanComments(n.Child(idx))
	}
}
