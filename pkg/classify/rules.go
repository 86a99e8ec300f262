package classify

import (
	"strings"
	"unicode"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/codelayers/strata/pkg/layer"
	"github.com/codelayers/strata/pkg/syntax"
)

// ruleDirectivePrologue classifies an expression statement whose sole
// content is a string literal: library-reserved directives take the
// library layer for the whole statement, every other directive (including
// language-reserved ones like "use strict") stays base layer. Returns
// false for ordinary expression statements.
func (c *collector) ruleDirectivePrologue(n sitter.Node) bool {
	if n.NamedChildCount() != 1 {
		return false
	}

	child := n.NamedChild(0)
	if child.Type() != "string" {
		return false
	}

	if isLibraryDirective(stripQuotes(c.text(child))) {
		c.emitNode(n, layer.Library)
	} else {
		c.emitNode(n, layer.Base)
	}

	return true
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}

	return s
}

// ruleUsingDeclaration classifies `using` / `await using` declarations:
// the leading keyword token(s) up to the first binding are type layer,
// the remainder of the statement base layer. Returns false for ordinary
// let/const/var declarations.
func (c *collector) ruleUsingDeclaration(n sitter.Node) bool {
	if n.ChildCount() == 0 {
		return false
	}

	first := n.Child(0)

	kwEnd := syntax.NotFound

	switch first.Type() {
	case "using":
		kwEnd = syntax.End(first)
	case "await":
		if n.ChildCount() > 1 && n.Child(1).Type() == "using" {
			kwEnd = syntax.End(n.Child(1))
		}
	}

	if kwEnd == syntax.NotFound {
		return false
	}

	c.emit(syntax.Start(n), kwEnd, layer.Type)
	c.emit(kwEnd, syntax.End(n), layer.Base)
	c.walkChildren(n)

	return true
}

// ruleUsingExpression classifies the deferred-disposal form the grammar
// actually produces: `using x = ...` parses as an assignment expression
// (and `await using x = ...` as an await expression) carrying a bare
// `using` token child. The keyword token is type layer, the rest of the
// expression base. Returns false for ordinary assignments and awaits.
func (c *collector) ruleUsingExpression(n sitter.Node) bool {
	kw := c.childOfKind(n, "using")
	if kw.IsNull() {
		return false
	}

	c.emitNode(n, layer.Base)
	c.emitNode(kw, layer.Type)
	c.walkChildren(n)

	return true
}

// ruleHeritage classifies extends/implements clauses: a base whose bare
// name is a tracked library type, or whose dotted qualifier is the
// library namespace, becomes library layer; attached type-argument lists
// are located via the bracket matcher, and descent continues into the
// clause contents.
func (c *collector) ruleHeritage(n sitter.Node) {
	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		switch child.Type() {
		case "type_arguments":
			c.emitAngleSpan(child)
		case "identifier":
			if isTrackedLibraryType(c.text(child)) {
				c.emitNode(child, layer.Library)
			}
		case "member_expression":
			// Dotted heritage bases carry the namespace, not a bare
			// tracked name: React.Component, never Component alone.
			if qualifier, _, ok := strings.Cut(c.text(child), "."); ok && qualifier == namespaceName {
				c.emitNode(child, layer.Library)
			}
		}
	}

	c.walkChildren(n)
}

// ruleInstantiation classifies instantiation expressions (`expr<T>`): the
// base expression is library layer when its name is tracked, the
// type-argument list is located via the bracket matcher, descent
// continues.
func (c *collector) ruleInstantiation(n sitter.Node) {
	c.emitNode(n, layer.Base)

	if ta := c.childOfKind(n, "type_arguments"); !ta.IsNull() {
		c.emitAngleSpan(ta)
	}

	if n.NamedChildCount() > 0 {
		base := n.NamedChild(0)
		if base.Type() == "identifier" && isTrackedLibraryType(c.text(base)) {
			c.emitNode(base, layer.Library)
		}
	}

	c.walkChildren(n)
}

// ruleClass classifies class declarations: the whole span is base layer,
// `abstract` modifier tokens are type layer, and the type-parameter list
// is located via the bracket matcher. Heritage type arguments are handled
// by the heritage rule during descent. The class name is part of the base
// declaration skeleton even though the grammar reports it as a type
// identifier, so descent skips it.
func (c *collector) ruleClass(n sitter.Node) {
	c.emitNode(n, layer.Base)

	name := n.ChildByFieldName("name")

	for idx := range n.ChildCount() {
		child := n.Child(idx)

		switch child.Type() {
		case "abstract":
			c.emitNode(child, layer.Type)
		case "type_parameters":
			c.emitAngleSpan(child)
		}

		if !name.IsNull() && child.Type() == "type_identifier" && syntax.Start(child) == syntax.Start(name) {
			continue
		}

		c.walk(child)
	}
}

// ruleOperandTypeSuffix classifies `expr as T` and `expr satisfies T`:
// the operand is independently re-classified by descent (ending up
// base-rooted), the operator keyword plus type is type layer.
func (c *collector) ruleOperandTypeSuffix(n sitter.Node) {
	if n.NamedChildCount() == 0 {
		return
	}

	operand := n.NamedChild(0)
	c.emit(syntax.End(operand), syntax.End(n), layer.Type)
	c.walk(operand)
}

// ruleNonNull classifies `expr!`: the trailing `!` is type layer, the
// operand re-classified by descent.
func (c *collector) ruleNonNull(n sitter.Node) {
	end := syntax.End(n)
	c.emit(end-1, end, layer.Type)

	if n.NamedChildCount() > 0 {
		c.walk(n.NamedChild(0))
	}
}

// ruleTypeAssertion classifies the legacy `<T>expr` assertion: the
// leading type-argument list is type layer, the operand re-classified by
// descent. Under the markup-enabled parse mode this node rarely appears
// (the construct parses as a markup element instead, a documented quirk).
func (c *collector) ruleTypeAssertion(n sitter.Node) {
	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		if child.Type() == "type_arguments" {
			c.emitAngleSpan(child)

			continue
		}

		c.walk(child)
	}
}

// ruleTypedMember classifies typed bindings on parameters, class fields
// and method definitions: the whole node is a base skeleton; access
// modifier tokens are individually type layer; the type annotation is
// type layer, extended leftward to a preceding optional marker when one
// exists; type-parameter lists are located via the bracket matcher.
func (c *collector) ruleTypedMember(n sitter.Node) {
	c.emitNode(n, layer.Base)

	optionalMark := syntax.NotFound

	for idx := range n.ChildCount() {
		child := n.Child(idx)
		switch child.Type() {
		case "accessibility_modifier", "override_modifier", "readonly", "abstract", "accessor":
			c.emitNode(child, layer.Type)
		case "?":
			optionalMark = syntax.Start(child)
		case "type_parameters":
			c.emitAngleSpan(child)
		case "type_annotation":
			start := syntax.Start(child)
			if optionalMark != syntax.NotFound {
				start = optionalMark
			}

			c.emit(start, syntax.End(child), layer.Type)
		}
	}

	c.walkChildren(n)
}

// ruleTypeOnlyStatement classifies fully type-only import/export
// statements (`import type ...`, `export type { ... }`): the whole
// statement is type layer, except named bindings matching tracked library
// type names, which upgrade to library layer. Mixed statements with
// per-specifier markers fall through to the default base mapping; the
// specifier rule handles the markers. Returns false for value
// imports/exports.
func (c *collector) ruleTypeOnlyStatement(n sitter.Node) bool {
	typeOnly := false

	for idx := range n.ChildCount() {
		child := n.Child(idx)
		if !child.IsNamed() && child.Type() == "type" {
			typeOnly = true

			break
		}
	}

	if !typeOnly {
		return false
	}

	c.emitNode(n, layer.Type)
	c.upgradeTrackedBindings(n)

	return true
}

// upgradeTrackedBindings scans a type-only import/export for bound names
// matching tracked library types and upgrades them to library layer.
func (c *collector) upgradeTrackedBindings(n sitter.Node) {
	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)

		switch child.Type() {
		case "import_specifier", "export_specifier":
			name := child.ChildByFieldName("name")
			if !name.IsNull() && isTrackedLibraryType(c.text(name)) {
				c.emitNode(name, layer.Library)
			}
		case "identifier":
			if isTrackedLibraryType(c.text(child)) {
				c.emitNode(child, layer.Library)
			}
		}

		c.upgradeTrackedBindings(child)
	}
}

// ruleTypedSpecifier classifies a per-specifier type marker inside a
// mixed import/export: the marker token is type layer and the bound name
// library layer when tracked, type layer otherwise. Returns false for
// plain value specifiers.
func (c *collector) ruleTypedSpecifier(n sitter.Node) bool {
	marked := false

	for idx := range n.ChildCount() {
		child := n.Child(idx)
		if !child.IsNamed() && child.Type() == "type" {
			c.emitNode(child, layer.Type)

			marked = true
		}
	}

	if !marked {
		return false
	}

	for _, field := range []string{"name", "alias"} {
		bound := n.ChildByFieldName(field)
		if bound.IsNull() {
			continue
		}

		if isTrackedLibraryType(c.text(bound)) {
			c.emitNode(bound, layer.Library)
		} else {
			c.emitNode(bound, layer.Type)
		}
	}

	return true
}

// ruleEnumDeclaration records the declared name into the traversal
// context and classifies the whole declaration as type layer. Later
// member accesses on the recorded name become type layer; the effect is
// forward-only because the set is populated during the same pre-order
// walk.
func (c *collector) ruleEnumDeclaration(n sitter.Node) {
	if name := n.ChildByFieldName("name"); !name.IsNull() {
		c.trackedEnums[c.text(name)] = struct{}{}
	}

	c.emitNode(n, layer.Type)
}

// ruleTrackedEnumAccess classifies a property access whose base matches a
// previously tracked enum name as type layer. Returns false for every
// other member access.
func (c *collector) ruleTrackedEnumAccess(n sitter.Node) bool {
	obj := n.ChildByFieldName("object")
	if obj.IsNull() || obj.Type() != "identifier" {
		return false
	}

	if _, tracked := c.trackedEnums[c.text(obj)]; !tracked {
		return false
	}

	c.emitNode(n, layer.Type)

	return true
}

// ruleCallExpression applies the library-call heuristics. An explicit
// type-argument list is always located via the bracket matcher and marked
// type layer. Callees matching the hook set, the qualified hook pattern,
// the utility set, the element-construction call, or any other
// namespace-qualified access take the library layer on the callee alone,
// with the whole call span base layer and arguments classified by descent.
func (c *collector) ruleCallExpression(n sitter.Node) {
	if ta := c.childOfKind(n, "type_arguments"); !ta.IsNull() {
		c.emitAngleSpan(ta)
	}

	callee := n.ChildByFieldName("function")
	if callee.IsNull() {
		c.emitNode(n, layer.Base)
		c.walkChildren(n)

		return
	}

	calleeText := c.text(callee)

	switch {
	case callee.Type() == "identifier" && (isHookName(calleeText) || isUtilityName(calleeText)):
		c.emitNode(callee, layer.Library)
		c.emitNode(n, layer.Base)

	case c.isQualifiedHook(callee):
		c.emitNode(callee, layer.Library)
		c.emitNode(n, layer.Base)

	case c.isElementFactory(callee, calleeText):
		c.emitNode(callee, layer.Library)
		c.emitNode(n, layer.Base)
		c.markElementFactoryArgs(n)

	case c.isNamespaceAccess(callee):
		c.emitNode(callee, layer.Library)
		c.emitNode(n, layer.Base)

	default:
		c.emitNode(n, layer.Base)
	}

	c.walkChildren(n)
}

// isQualifiedHook reports whether the callee is a "Namespace.useXxx"
// access on the library namespace.
func (c *collector) isQualifiedHook(callee sitter.Node) bool {
	if callee.Type() != "member_expression" {
		return false
	}

	obj := callee.ChildByFieldName("object")
	prop := callee.ChildByFieldName("property")

	if obj.IsNull() || prop.IsNull() || obj.Type() != "identifier" {
		return false
	}

	return c.text(obj) == namespaceName && strings.HasPrefix(c.text(prop), "use")
}

// isElementFactory reports whether the callee is the library's
// element-construction call, bare or namespace-qualified.
func (c *collector) isElementFactory(callee sitter.Node, calleeText string) bool {
	if callee.Type() == "identifier" {
		return calleeText == elementFactoryName
	}

	if callee.Type() != "member_expression" {
		return false
	}

	obj := callee.ChildByFieldName("object")
	prop := callee.ChildByFieldName("property")

	if obj.IsNull() || prop.IsNull() {
		return false
	}

	return c.text(obj) == namespaceName && c.text(prop) == elementFactoryName
}

// isNamespaceAccess reports whether the callee is any other
// namespace-qualified access on the library namespace.
func (c *collector) isNamespaceAccess(callee sitter.Node) bool {
	if callee.Type() != "member_expression" {
		return false
	}

	obj := callee.ChildByFieldName("object")

	return !obj.IsNull() && obj.Type() == "identifier" && c.text(obj) == namespaceName
}

// markElementFactoryArgs upgrades element-construction arguments: a
// capitalized component reference or namespace-qualified reference as the
// first argument, and a reserved "key" property inside an object-literal
// second argument.
func (c *collector) markElementFactoryArgs(n sitter.Node) {
	args := n.ChildByFieldName("arguments")
	if args.IsNull() {
		return
	}

	if args.NamedChildCount() > 0 {
		first := args.NamedChild(0)

		switch first.Type() {
		case "identifier":
			if startsUpper(c.text(first)) {
				c.emitNode(first, layer.Library)
			}
		case "member_expression":
			obj := first.ChildByFieldName("object")
			if !obj.IsNull() && obj.Type() == "identifier" && c.text(obj) == namespaceName {
				c.emitNode(first, layer.Library)
			}
		}
	}

	if args.NamedChildCount() > 1 {
		second := args.NamedChild(1)
		if second.Type() == "object" {
			for idx := range second.NamedChildCount() {
				pair := second.NamedChild(idx)
				if pair.Type() != "pair" {
					continue
				}

				key := pair.ChildByFieldName("key")
				if !key.IsNull() && c.text(key) == "key" {
					c.emitNode(key, layer.Library)
				}
			}
		}
	}
}

// ruleNewExpression classifies constructor calls: the whole span is base
// layer and an explicit type-argument list, located via the bracket
// matcher, type layer.
func (c *collector) ruleNewExpression(n sitter.Node) {
	c.emitNode(n, layer.Base)

	if ta := c.childOfKind(n, "type_arguments"); !ta.IsNull() {
		c.emitAngleSpan(ta)
	}

	c.walkChildren(n)
}

// ruleNamespaceIdentifier classifies a bare identifier equal to the
// library namespace name as library layer. Returns false for every other
// identifier.
func (c *collector) ruleNamespaceIdentifier(n sitter.Node) bool {
	if c.text(n) != namespaceName {
		return false
	}

	c.emitNode(n, layer.Library)

	return true
}

// ruleTypeReference classifies type references: type layer by default,
// escalated to library layer when namespace-qualified under the library
// or markup namespace, or when the name is a tracked library type.
func (c *collector) ruleTypeReference(n sitter.Node) {
	text := c.text(n)

	if qualifier, _, qualified := strings.Cut(text, "."); qualified {
		if qualifier == namespaceName || qualifier == markupNamespaceName {
			c.emitNode(n, layer.Library)
		} else {
			c.emitNode(n, layer.Type)
		}

		return
	}

	if isTrackedLibraryType(text) {
		c.emitNode(n, layer.Library)
	} else {
		c.emitNode(n, layer.Type)
	}
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}

	return false
}
