package classify

import (
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/codelayers/strata/pkg/layer"
	"github.com/codelayers/strata/pkg/syntax"
)

// spreadTokenLen is the byte length of the "..." spread token.
const spreadTokenLen = 3

// ruleMisparsedGenericArrow reclassifies a bare generic arrow function the
// markup-enabled parse mode reports as a JSX element: an element with no
// attributes whose leading raw-text child contains "=>" is really
// `<T>(...) => ...` — the parser reports the parameter list and arrow as
// jsx_text directly after the opening tag. The `<T>` portion becomes type
// layer, the remainder base layer, and any genuinely nested markup
// children are still visited. Returns false when the element does not
// match that shape; real markup keeps arrows inside expression holders,
// never in leading raw text.
func (c *collector) ruleMisparsedGenericArrow(n sitter.Node) bool {
	opening := c.childOfKind(n, "jsx_opening_element")
	if opening.IsNull() {
		return false
	}

	if !c.childOfKind(opening, "jsx_attribute").IsNull() {
		return false
	}

	if !c.hasLeadingArrowText(n) {
		return false
	}

	c.emitNode(opening, layer.Type)
	c.emit(syntax.End(opening), syntax.End(n), layer.Base)

	for idx := range n.ChildCount() {
		child := n.Child(idx)
		switch child.Type() {
		case "jsx_element", "jsx_self_closing_element", "jsx_expression":
			c.walk(child)
		}
	}

	return true
}

// hasLeadingArrowText reports whether the element's first content child
// is raw text containing "=>". The first embedded expression or nested
// element ends the scan: past that point the element is genuine markup.
func (c *collector) hasLeadingArrowText(n sitter.Node) bool {
	for idx := range n.ChildCount() {
		child := n.Child(idx)
		switch child.Type() {
		case "jsx_text":
			return strings.Contains(c.text(child), "=>")
		case "jsx_expression", "jsx_element", "jsx_self_closing_element", "jsx_closing_element":
			return false
		}
	}

	return false
}

// ruleMarkupElement classifies opening, closing and self-closing tags:
// only the bracket and tag-name span is markup layer. A dotted
// "Namespace.Name" tag name is itself library layer, leaving just the
// brackets as markup. Type arguments attached to the tag are located via
// the bracket matcher. Attributes are left to their own rule via descent.
func (c *collector) ruleMarkupElement(n sitter.Node) {
	start, end := syntax.Start(n), syntax.End(n)

	name := n.ChildByFieldName("name")
	if name.IsNull() {
		// Fragment form: the node is just the bare brackets.
		c.emit(start, end, layer.Markup)

		return
	}

	nameStart, nameEnd := syntax.Start(name), syntax.End(name)
	qualified := strings.Contains(c.text(name), ".")

	if n.Type() == "jsx_closing_element" {
		if qualified {
			c.emit(start, nameStart, layer.Markup)
			c.emit(nameStart, nameEnd, layer.Library)
			c.emit(nameEnd, end, layer.Markup)
		} else {
			c.emit(start, end, layer.Markup)
		}

		return
	}

	if qualified {
		c.emit(start, nameStart, layer.Markup)
		c.emit(nameStart, nameEnd, layer.Library)
	} else {
		c.emit(start, nameEnd, layer.Markup)
	}

	if ta := c.childOfKind(n, "type_arguments"); !ta.IsNull() {
		c.emitAngleSpan(ta)
	}

	// Trailing ">" or "/>".
	if end >= 2 && c.src[end-2] == '/' {
		c.emit(end-2, end, layer.Markup)
	} else {
		c.emit(end-1, end, layer.Markup)
	}

	c.walkChildren(n)
}

// ruleMarkupExpression classifies an embedded `{...}` holder: the two
// delimiter characters are markup layer, the interior is classified by
// continued descent. A holder whose content is a spread (`{...expr}`,
// whitespace-tolerant) extends the opening delimiter through the spread
// token instead.
func (c *collector) ruleMarkupExpression(n sitter.Node) {
	start, end := syntax.Start(n), syntax.End(n)

	if spread := c.childOfKind(n, "spread_element"); !spread.IsNull() {
		c.emit(start, syntax.Start(spread)+spreadTokenLen, layer.Markup)
		c.emit(end-1, end, layer.Markup)
		c.walk(spread)

		return
	}

	c.emit(start, start+1, layer.Markup)
	c.emit(end-1, end, layer.Markup)
	c.walkChildren(n)
}

// ruleMarkupAttribute classifies an attribute: the name is library layer
// when it is a library-reserved prop, markup otherwise; the "=" and a
// string-literal value are markup; an expression-holder value defers to
// the holder rule.
func (c *collector) ruleMarkupAttribute(n sitter.Node) {
	for idx := range n.ChildCount() {
		child := n.Child(idx)
		switch child.Type() {
		case "property_identifier", "jsx_namespace_name":
			if isReservedProp(c.text(child)) {
				c.emitNode(child, layer.Library)
			} else {
				c.emitNode(child, layer.Markup)
			}
		case "=", "string":
			c.emitNode(child, layer.Markup)
		case "jsx_expression":
			c.walk(child)
		}
	}
}
