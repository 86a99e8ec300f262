package classify

import (
	"context"
	"reflect"
	"testing"

	"github.com/codelayers/strata/pkg/layer"
)

func classifyString(t *testing.T, src string) []layer.Region {
	t.Helper()

	regions, err := NewEngine().Classify(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("classify %q: %v", src, err)
	}

	return regions
}

// layerAt returns the resolved layer covering offset, or None when the
// offset falls into a gap.
func layerAt(regions []layer.Region, offset int) layer.Layer {
	for _, r := range regions {
		if offset >= r.Start && offset < r.End {
			return r.Layer
		}
	}

	return layer.None
}

func TestClassifyEmptyInput(t *testing.T) {
	t.Parallel()

	regions, err := NewEngine().Classify(context.Background(), nil)
	if err != nil {
		t.Fatalf("empty input must not fail: %v", err)
	}

	if len(regions) != 0 {
		t.Errorf("empty input yielded regions: %v", regions)
	}
}

func TestClassifyPlainDeclaration(t *testing.T) {
	t.Parallel()

	got := classifyString(t, "const x = 1;")
	want := []layer.Region{{Start: 0, End: 12, Layer: layer.Base}}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyTypeAnnotation(t *testing.T) {
	t.Parallel()

	// const x: string = "hello";
	//        ^^^^^^^^ type, rest base
	got := classifyString(t, `const x: string = "hello";`)
	want := []layer.Region{
		{Start: 0, End: 7, Layer: layer.Base},
		{Start: 7, End: 15, Layer: layer.Type},
		{Start: 15, End: 26, Layer: layer.Base},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyMarkupWithReservedProp(t *testing.T) {
	t.Parallel()

	src := `<li key="1">item</li>`
	regions := classifyString(t, src)

	checks := []struct {
		offset int
		want   layer.Layer
		what   string
	}{
		{0, layer.Markup, "opening bracket"},
		{2, layer.Markup, "tag name"},
		{4, layer.Library, "reserved prop name"},
		{6, layer.Library, "reserved prop name end"},
		{7, layer.Markup, "attribute equals"},
		{9, layer.Markup, "attribute value"},
		{11, layer.Markup, "closing bracket of opening tag"},
		{13, layer.Markup, "element text"},
		{18, layer.Markup, "closing tag"},
	}

	for _, tc := range checks {
		if got := layerAt(regions, tc.offset); got != tc.want {
			t.Errorf("%s at %d (%q): got %v, want %v",
				tc.what, tc.offset, src[tc.offset], got, tc.want)
		}
	}
}

func TestClassifyHookCall(t *testing.T) {
	t.Parallel()

	got := classifyString(t, "useState(0)")
	want := []layer.Region{
		{Start: 0, End: 8, Layer: layer.Library},
		{Start: 8, End: 11, Layer: layer.Base},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyNestedTypeArguments(t *testing.T) {
	t.Parallel()

	// new Map<string, Set<number>>()
	//        ^^^^^^^^^^^^^^^^^^^^^ type, depth-2 bracket matching
	got := classifyString(t, "new Map<string, Set<number>>()")
	want := []layer.Region{
		{Start: 0, End: 7, Layer: layer.Base},
		{Start: 7, End: 28, Layer: layer.Type},
		{Start: 28, End: 30, Layer: layer.Base},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyInterfaceDeclaration(t *testing.T) {
	t.Parallel()

	got := classifyString(t, "interface P { id: number }")
	want := []layer.Region{{Start: 0, End: 26, Layer: layer.Type}}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyLibraryDirective(t *testing.T) {
	t.Parallel()

	got := classifyString(t, `"use client";`)
	want := []layer.Region{{Start: 0, End: 13, Layer: layer.Library}}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// Language-level directives stay base.
	got = classifyString(t, `"use strict";`)
	want = []layer.Region{{Start: 0, End: 13, Layer: layer.Base}}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyOperandTypeSuffix(t *testing.T) {
	t.Parallel()

	got := classifyString(t, "x as string;")
	want := []layer.Region{
		{Start: 0, End: 1, Layer: layer.Base},
		{Start: 1, End: 11, Layer: layer.Type},
		{Start: 11, End: 12, Layer: layer.Base},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyNonNullAssertion(t *testing.T) {
	t.Parallel()

	got := classifyString(t, "user!.name;")
	want := []layer.Region{
		{Start: 0, End: 4, Layer: layer.Base},
		{Start: 4, End: 5, Layer: layer.Type},
		{Start: 5, End: 11, Layer: layer.Base},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyTrackedEnumAccess(t *testing.T) {
	t.Parallel()

	src := "enum Color { Red, Green }\nconst c = Color.Red;"
	regions := classifyString(t, src)

	if got := layerAt(regions, 3); got != layer.Type {
		t.Errorf("enum declaration: got %v, want Type", got)
	}

	// Color.Red in the second statement: [36,45).
	if got := layerAt(regions, 40); got != layer.Type {
		t.Errorf("tracked enum access: got %v, want Type", got)
	}

	if got := layerAt(regions, 27); got != layer.Base {
		t.Errorf("surrounding statement: got %v, want Base", got)
	}
}

func TestClassifyUntrackedMemberAccessStaysBase(t *testing.T) {
	t.Parallel()

	regions := classifyString(t, "const c = Color.Red;")

	if got := layerAt(regions, 12); got != layer.Base {
		t.Errorf("untracked member access: got %v, want Base", got)
	}
}

func TestClassifyNamespaceQualifiedHook(t *testing.T) {
	t.Parallel()

	src := "React.useEffect(fn);"
	regions := classifyString(t, src)

	if got := layerAt(regions, 0); got != layer.Library {
		t.Errorf("namespace qualifier: got %v, want Library", got)
	}

	if got := layerAt(regions, 10); got != layer.Library {
		t.Errorf("qualified hook name: got %v, want Library", got)
	}

	if got := layerAt(regions, 16); got != layer.Base {
		t.Errorf("argument: got %v, want Base", got)
	}
}

func TestClassifyMarkupSpread(t *testing.T) {
	t.Parallel()

	src := "<div {...rest} />"
	regions := classifyString(t, src)

	checks := []struct {
		offset int
		want   layer.Layer
		what   string
	}{
		{0, layer.Markup, "opening bracket"},
		{5, layer.Markup, "holder open"},
		{7, layer.Markup, "spread token"},
		{9, layer.Base, "spread expression"},
		{13, layer.Markup, "holder close"},
		{15, layer.Markup, "self-closing tokens"},
	}

	for _, tc := range checks {
		if got := layerAt(regions, tc.offset); got != tc.want {
			t.Errorf("%s at %d (%q): got %v, want %v",
				tc.what, tc.offset, src[tc.offset], got, tc.want)
		}
	}
}

func TestClassifyQualifiedTagName(t *testing.T) {
	t.Parallel()

	src := "<React.Fragment>x</React.Fragment>"
	regions := classifyString(t, src)

	if got := layerAt(regions, 0); got != layer.Markup {
		t.Errorf("opening bracket: got %v, want Markup", got)
	}

	if got := layerAt(regions, 3); got != layer.Library {
		t.Errorf("qualified tag name: got %v, want Library", got)
	}

	if got := layerAt(regions, 20); got != layer.Library {
		t.Errorf("closing qualified tag name: got %v, want Library", got)
	}

	if got := layerAt(regions, 16); got != layer.Markup {
		t.Errorf("element text: got %v, want Markup", got)
	}
}

func TestClassifyArrowInsideMarkupExpression(t *testing.T) {
	t.Parallel()

	// An arrow inside an expression holder is genuine markup content and
	// must not trip the misparsed-generic-arrow reclassification.
	src := `<div>{items.map(i => i)}</div>;`
	regions := classifyString(t, src)

	checks := []struct {
		offset int
		want   layer.Layer
		what   string
	}{
		{1, layer.Markup, "tag name"},
		{5, layer.Markup, "holder open"},
		{6, layer.Base, "callee base"},
		{18, layer.Base, "arrow token"},
		{23, layer.Markup, "holder close"},
		{25, layer.Markup, "closing tag"},
	}

	for _, tc := range checks {
		if got := layerAt(regions, tc.offset); got != tc.want {
			t.Errorf("%s at %d (%q): got %v, want %v",
				tc.what, tc.offset, src[tc.offset], got, tc.want)
		}
	}
}

func TestClassifyMisparsedGenericArrow(t *testing.T) {
	t.Parallel()

	// const f = <T>(x: T) => x;
	//           ^^^ reported as a markup element, really a type-parameter
	//           list; nothing here is markup.
	src := "const f = <T>(x: T) => x;"
	regions := classifyString(t, src)

	if got := layerAt(regions, 10); got != layer.Type {
		t.Errorf("opening bracket: got %v, want Type", got)
	}

	if got := layerAt(regions, 11); got != layer.Type {
		t.Errorf("type parameter: got %v, want Type", got)
	}

	if got := layerAt(regions, 14); got != layer.Base {
		t.Errorf("parameter name: got %v, want Base", got)
	}

	for _, r := range regions {
		if r.Layer == layer.Markup {
			t.Errorf("markup region %v in a non-markup document", r)
		}
	}
}

func TestClassifyUsingDeclaration(t *testing.T) {
	t.Parallel()

	// using res = open();
	// ^^^^^ type, rest base
	got := classifyString(t, "using res = open();")
	want := []layer.Region{
		{Start: 0, End: 5, Layer: layer.Type},
		{Start: 5, End: 19, Layer: layer.Base},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyClassNameStaysBase(t *testing.T) {
	t.Parallel()

	got := classifyString(t, "class A {}")
	want := []layer.Region{{Start: 0, End: 10, Layer: layer.Base}}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got = classifyString(t, "abstract class A {}")
	want = []layer.Region{
		{Start: 0, End: 8, Layer: layer.Type},
		{Start: 8, End: 19, Layer: layer.Base},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClassifyQualifiedHeritage(t *testing.T) {
	t.Parallel()

	src := "class C extends React.Component {}"
	regions := classifyString(t, src)

	// React.Component spans [16,31).
	if got := layerAt(regions, 16); got != layer.Library {
		t.Errorf("heritage qualifier: got %v, want Library", got)
	}

	if got := layerAt(regions, 30); got != layer.Library {
		t.Errorf("heritage base name: got %v, want Library", got)
	}

	if got := layerAt(regions, 6); got != layer.Base {
		t.Errorf("class name: got %v, want Base", got)
	}

	if got := layerAt(regions, 8); got != layer.Base {
		t.Errorf("extends keyword: got %v, want Base", got)
	}
}

func TestDefaultLayersCoverPlainExpressions(t *testing.T) {
	t.Parallel()

	for _, kind := range []string{"identifier", "member_expression"} {
		if got := defaultLayers[kind]; got != layer.Base {
			t.Errorf("defaultLayers[%q] = %v, want Base", kind, got)
		}
	}
}

func TestClassifyComments(t *testing.T) {
	t.Parallel()

	src := "// note\ninterface P { id: number }"
	regions := classifyString(t, src)

	if got := layerAt(regions, 0); got != layer.Base {
		t.Errorf("comment: got %v, want Base", got)
	}

	if got := layerAt(regions, 10); got != layer.Type {
		t.Errorf("declaration after comment: got %v, want Type", got)
	}
}

func TestClassifyCoverageOfPlainDocument(t *testing.T) {
	t.Parallel()

	src := "function add(a, b) { return a + b; }"
	regions := classifyString(t, src)

	for offset, b := range []byte(src) {
		if b == ' ' || b == '\n' || b == '\t' {
			continue
		}

		if layerAt(regions, offset) == layer.None {
			t.Errorf("offset %d (%q) not covered", offset, src[offset])
		}
	}
}

var invariantCorpus = []string{
	"const x = 1;",
	`const x: string = "hello";`,
	`<li key="1">item</li>`,
	"useState(0)",
	"new Map<string, Set<number>>()",
	"interface Props { children?: ReactNode }",
	"enum Dir { Up, Down }\nconst d = Dir.Up;",
	"type Pair<A, B> = [A, B];",
	`import type { FC } from "react";`,
	"const App: FC = () => <div className=\"app\">{count}</div>;",
	"class Store<T> extends Base implements Pushable<T> { push(v: T): void {} }",
	"declare module \"env\" { const url: string; }",
	"function id<T>(v: T): T { return v!; }",
	"const el = React.createElement(Widget, { key: 1 });",
	"broken ( const <<",
}

func TestClassifyInvariants(t *testing.T) {
	t.Parallel()

	engine := NewEngine()

	for _, src := range invariantCorpus {
		regions, err := engine.Classify(context.Background(), []byte(src))
		if err != nil {
			t.Errorf("classify %q: %v", src, err)

			continue
		}

		for i, r := range regions {
			if r.Start < 0 || r.End > len(src) || r.Start >= r.End {
				t.Errorf("%q: malformed region %v", src, r)
			}

			if i == 0 {
				continue
			}

			prev := regions[i-1]
			if prev.End > r.Start {
				t.Errorf("%q: overlapping regions %v then %v", src, prev, r)
			}

			if prev.End == r.Start && prev.Layer == r.Layer {
				t.Errorf("%q: touching regions share layer %v then %v", src, prev, r)
			}
		}
	}
}

func TestClassifyIdempotent(t *testing.T) {
	t.Parallel()

	engine := NewEngine()

	for _, src := range invariantCorpus {
		first, err := engine.Classify(context.Background(), []byte(src))
		if err != nil {
			t.Fatalf("classify %q: %v", src, err)
		}

		second, err := engine.Classify(context.Background(), []byte(src))
		if err != nil {
			t.Fatalf("reclassify %q: %v", src, err)
		}

		if !reflect.DeepEqual(first, second) {
			t.Errorf("%q: reclassification differs:\n%v\n%v", src, first, second)
		}
	}
}
