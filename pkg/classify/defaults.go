package classify

import "github.com/codelayers/strata/pkg/layer"

// defaultLayers is the static node-kind to layer table applied when no
// special-case rule intercepts a node. The whole node span takes the
// layer; the walk still descends into children. Node kinds absent from
// the table are unclassified themselves but are still descended into.
//
// Library is never a default layer; it is produced only by the
// special-case rules in rules.go.
var defaultLayers = map[string]layer.Layer{
	// Declarations form the base skeleton.
	"lexical_declaration":            layer.Base,
	"variable_declaration":           layer.Base,
	"variable_declarator":            layer.Base,
	"function_declaration":           layer.Base,
	"generator_function_declaration": layer.Base,
	"function_expression":            layer.Base,
	"generator_function":             layer.Base,
	"arrow_function":                 layer.Base,
	"statement_block":                layer.Base,
	"formal_parameters":              layer.Base,
	"arguments":                      layer.Base,

	// Control flow.
	"if_statement":         layer.Base,
	"else_clause":          layer.Base,
	"for_statement":        layer.Base,
	"for_in_statement":     layer.Base,
	"while_statement":      layer.Base,
	"do_statement":         layer.Base,
	"switch_statement":     layer.Base,
	"switch_body":          layer.Base,
	"switch_case":          layer.Base,
	"switch_default":       layer.Base,
	"try_statement":        layer.Base,
	"catch_clause":         layer.Base,
	"finally_clause":       layer.Base,
	"throw_statement":      layer.Base,
	"return_statement":     layer.Base,
	"break_statement":      layer.Base,
	"continue_statement":   layer.Base,
	"labeled_statement":    layer.Base,
	"expression_statement": layer.Base,
	"debugger_statement":   layer.Base,
	"empty_statement":      layer.Base,

	// Expressions.
	"binary_expression":               layer.Base,
	"unary_expression":                layer.Base,
	"update_expression":               layer.Base,
	"ternary_expression":              layer.Base,
	"assignment_expression":           layer.Base,
	"augmented_assignment_expression": layer.Base,
	"await_expression":                layer.Base,
	"yield_expression":                layer.Base,
	"sequence_expression":             layer.Base,
	"parenthesized_expression":        layer.Base,
	"subscript_expression":            layer.Base,
	"member_expression":               layer.Base,
	"identifier":                      layer.Base,
	"template_string":                 layer.Base,
	"template_substitution":           layer.Base,
	"object":                          layer.Base,
	"array":                           layer.Base,
	"pair":                            layer.Base,
	"object_pattern":                  layer.Base,
	"array_pattern":                   layer.Base,
	"pair_pattern":                    layer.Base,
	"spread_element":                  layer.Base,
	"rest_pattern":                    layer.Base,
	"computed_property_name":          layer.Base,
	"property_identifier":             layer.Base,

	// Object property shorthands.
	"shorthand_property_identifier":         layer.Base,
	"shorthand_property_identifier_pattern": layer.Base,

	// Literals and import/export machinery.
	"string":           layer.Base,
	"string_fragment":  layer.Base,
	"number":           layer.Base,
	"regex":            layer.Base,
	"true":             layer.Base,
	"false":            layer.Base,
	"null":             layer.Base,
	"undefined":        layer.Base,
	"this":             layer.Base,
	"super":            layer.Base,
	"import_statement": layer.Base,
	"export_statement": layer.Base,
	"import_clause":    layer.Base,
	"named_imports":    layer.Base,
	"namespace_import": layer.Base,
	"export_clause":    layer.Base,

	// Type layer: annotations, type expressions, type declarations.
	"type_alias_declaration":   layer.Type,
	"interface_declaration":    layer.Type,
	"type_annotation":          layer.Type,
	"asserts_annotation":       layer.Type,
	"type_arguments":           layer.Type,
	"type_parameters":          layer.Type,
	"type_parameter":           layer.Type,
	"predefined_type":          layer.Type,
	"union_type":               layer.Type,
	"intersection_type":        layer.Type,
	"array_type":               layer.Type,
	"tuple_type":               layer.Type,
	"function_type":            layer.Type,
	"constructor_type":         layer.Type,
	"conditional_type":         layer.Type,
	"generic_type":             layer.Type,
	"object_type":              layer.Type,
	"mapped_type_clause":       layer.Type,
	"infer_type":               layer.Type,
	"type_predicate":           layer.Type,
	"type_query":               layer.Type,
	"index_type_query":         layer.Type,
	"lookup_type":              layer.Type,
	"literal_type":             layer.Type,
	"template_literal_type":    layer.Type,
	"parenthesized_type":       layer.Type,
	"this_type":                layer.Type,
	"readonly_type":            layer.Type,
	"optional_type":            layer.Type,
	"rest_type":                layer.Type,
	"existential_type":         layer.Type,
	"flow_maybe_type":          layer.Type,
	"accessibility_modifier":   layer.Type,
	"override_modifier":        layer.Type,
	"opting_type_annotation":   layer.Type,
	"omitting_type_annotation": layer.Type,

	// Raw text between markup tags. Bare fragment open/close tokens are
	// handled by the markup element rule, which also covers fragments
	// whose opening/closing elements carry no tag name.
	"jsx_text":                 layer.Markup,
	"html_character_reference": layer.Markup,
	"jsx_namespace_name":       layer.Markup,
}
