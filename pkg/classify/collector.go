package classify

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/codelayers/strata/pkg/layer"
	"github.com/codelayers/strata/pkg/syntax"
)

// collector walks the syntax tree in pre-order and emits candidate
// regions. It carries the document-scoped traversal context: the set of
// enum names declared so far, consulted by later member accesses. A fresh
// collector is allocated per classification call, so concurrent calls on
// independent documents never share state.
type collector struct {
	src          []byte
	candidates   []layer.Candidate
	trackedEnums map[string]struct{}
}

func newCollector(src []byte) *collector {
	return &collector{
		src:          src,
		trackedEnums: make(map[string]struct{}),
	}
}

// emit records a candidate region. Degenerate ranges are dropped, never
// emitted.
func (c *collector) emit(start, end int, l layer.Layer) {
	if start >= end {
		return
	}

	c.candidates = append(c.candidates, layer.Candidate{
		Start:    start,
		End:      end,
		Layer:    l,
		Priority: l.Priority(),
	})
}

func (c *collector) emitNode(n sitter.Node, l layer.Layer) {
	c.emit(syntax.Start(n), syntax.End(n), l)
}

func (c *collector) text(n sitter.Node) string {
	return n.Content(c.src)
}

// walk dispatches a node to its special-case rule if one applies,
// otherwise applies the default node-kind table and descends. A fired
// special case suppresses the default mapping for that node and controls
// its own descent.
func (c *collector) walk(n sitter.Node) {
	if n.IsNull() {
		return
	}

	if c.dispatch(n) {
		return
	}

	if l, ok := defaultLayers[n.Type()]; ok {
		c.emitNode(n, l)
	}

	c.walkChildren(n)
}

func (c *collector) walkChildren(n sitter.Node) {
	for idx := range n.ChildCount() {
		c.walk(n.Child(idx))
	}
}

// dispatch routes a node to its special-case rule. It returns true when a
// rule fired (and handled descent itself); rules that inspect a node and
// find their shape absent return false, falling through to the default
// mapping.
func (c *collector) dispatch(n sitter.Node) bool {
	switch n.Type() {
	case "jsx_element":
		return c.ruleMisparsedGenericArrow(n)

	case "jsx_opening_element", "jsx_closing_element", "jsx_self_closing_element":
		c.ruleMarkupElement(n)

		return true

	case "jsx_expression":
		c.ruleMarkupExpression(n)

		return true

	case "jsx_attribute":
		c.ruleMarkupAttribute(n)

		return true

	case "decorator":
		// Entire decorator span, marker and expression, is type layer.
		c.emitNode(n, layer.Type)

		return true

	case "expression_statement":
		return c.ruleDirectivePrologue(n)

	case "ambient_declaration", "module", "internal_module":
		// Declared/ambient constructs are wholly type layer; nothing
		// beneath can escalate priority usefully, so no descent.
		c.emitNode(n, layer.Type)

		return true

	case "lexical_declaration", "variable_declaration":
		return c.ruleUsingDeclaration(n)

	case "assignment_expression", "await_expression":
		return c.ruleUsingExpression(n)

	case "extends_clause", "implements_clause":
		c.ruleHeritage(n)

		return true

	case "instantiation_expression":
		c.ruleInstantiation(n)

		return true

	case "class_declaration", "abstract_class_declaration", "class":
		c.ruleClass(n)

		return true

	case "as_expression", "satisfies_expression":
		c.ruleOperandTypeSuffix(n)

		return true

	case "non_null_expression":
		c.ruleNonNull(n)

		return true

	case "type_assertion":
		c.ruleTypeAssertion(n)

		return true

	case "required_parameter", "optional_parameter", "public_field_definition",
		"method_definition", "abstract_method_signature":
		c.ruleTypedMember(n)

		return true

	case "import_statement", "export_statement":
		return c.ruleTypeOnlyStatement(n)

	case "import_specifier", "export_specifier":
		return c.ruleTypedSpecifier(n)

	case "enum_declaration":
		c.ruleEnumDeclaration(n)

		return true

	case "member_expression":
		return c.ruleTrackedEnumAccess(n)

	case "call_expression":
		c.ruleCallExpression(n)

		return true

	case "new_expression":
		c.ruleNewExpression(n)

		return true

	case "identifier":
		return c.ruleNamespaceIdentifier(n)

	case "type_identifier", "nested_type_identifier":
		c.ruleTypeReference(n)

		return true
	}

	return false
}

// emitAngleSpan marks a type-argument or type-parameter list as type
// layer using the lexical bracket matcher: a backward scan locates the
// opening '<' and a depth-counted forward scan its matching '>'. Either
// scan failing means the candidate is simply omitted.
func (c *collector) emitAngleSpan(n sitter.Node) {
	open := syntax.OpeningAngleBefore(c.src, syntax.Start(n)+1)
	if open == syntax.NotFound {
		return
	}

	closing := syntax.ClosingAngleAfter(c.src, open)
	if closing == syntax.NotFound {
		return
	}

	c.emit(open, closing+1, layer.Type)
}

// childOfKind returns the first child (named or anonymous) with the given
// node kind, or a null node.
func (c *collector) childOfKind(n sitter.Node, kind string) sitter.Node {
	for idx := range n.ChildCount() {
		child := n.Child(idx)
		if child.Type() == kind {
			return child
		}
	}

	return sitter.Node{}
}
