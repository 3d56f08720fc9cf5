// Package extract collects literal className tokens from JSX and TSX sources.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/yacobolo/dxstyles/internal/classname"
)

// ClassAttribute is the only attribute whose literal value is collected.
const ClassAttribute = "className"

// ErrSyntax is returned when the parsed tree contains errors.
var ErrSyntax = errors.New("syntax error")

// LanguageFor returns the grammar for a file extension, or nil when the
// extension is not a JavaScript dialect.
func LanguageFor(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsx":
		return tsx.GetLanguage()
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	case ".jsx", ".js", ".mjs", ".cjs":
		return javascript.GetLanguage()
	default:
		return nil
	}
}

// ExtractFile reads and parses path and returns its classnames. On any
// failure the returned set is empty and err says why; callers treat the file
// as contributing nothing.
func ExtractFile(ctx context.Context, path string) (classname.Set, error) {
	lang := LanguageFor(path)
	if lang == nil {
		return classname.NewSet(), fmt.Errorf("%s: unsupported extension", path)
	}
	// #nosec G304 - path comes from the watched tree
	src, err := os.ReadFile(path)
	if err != nil {
		return classname.NewSet(), err
	}
	names, err := ExtractSource(ctx, src, lang)
	if err != nil {
		return names, fmt.Errorf("%s: %w", path, err)
	}
	return names, nil
}

// ExtractSource parses src with lang and returns its classnames.
func ExtractSource(ctx context.Context, src []byte, lang *sitter.Language) (classname.Set, error) {
	if len(src) == 0 {
		return classname.NewSet(), nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return classname.NewSet(), fmt.Errorf("parsing: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return classname.NewSet(), ErrSyntax
	}
	return Extract(root, src), nil
}

// Extract walks a parsed tree depth-first and collects every whitespace
// separated token of literal className attributes.
func Extract(root *sitter.Node, src []byte) classname.Set {
	w := walker{src: src, names: classname.NewSet()}
	w.visit(root)
	return w.names
}

type walker struct {
	src   []byte
	names classname.Set
}

func (w *walker) visit(n *sitter.Node) {
	if n == nil {
		return
	}

	switch n.Type() {
	// Statements
	case "program",
		"expression_statement",
		"statement_block",
		"return_statement",
		"if_statement", "else_clause",
		"for_statement", "for_in_statement", "while_statement", "do_statement",
		"switch_statement", "switch_body", "switch_case", "switch_default",
		"try_statement", "catch_clause", "finally_clause",
		"labeled_statement":
		w.children(n)

	// Declarations
	case "lexical_declaration", "variable_declaration", "variable_declarator",
		"function_declaration", "generator_function_declaration",
		"class_declaration", "abstract_class_declaration", "class",
		"class_body", "class_heritage", "extends_clause",
		"method_definition", "public_field_definition", "field_definition",
		"export_statement":
		w.children(n)

	// Expressions
	case "function_expression", "function", "generator_function", "arrow_function",
		"ternary_expression", "binary_expression", "parenthesized_expression",
		"call_expression", "arguments", "spread_element",
		"assignment_expression", "await_expression", "sequence_expression",
		"member_expression", "subscript_expression", "new_expression",
		"unary_expression", "update_expression", "yield_expression",
		"augmented_assignment_expression",
		"template_string", "template_substitution",
		"array", "object", "pair",
		"as_expression", "satisfies_expression", "non_null_expression", "type_assertion":
		w.children(n)

	// Patterns and parameters carry markup in default values.
	case "formal_parameters", "required_parameter", "optional_parameter",
		"object_pattern", "array_pattern", "pair_pattern",
		"assignment_pattern", "object_assignment_pattern":
		w.children(n)

	// Markup
	case "jsx_element", "jsx_fragment", "jsx_expression",
		"jsx_opening_element", "jsx_self_closing_element":
		w.children(n)
	case "jsx_attribute":
		w.attribute(n)
	}
}

func (w *walker) children(n *sitter.Node) {
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		w.visit(n.NamedChild(i))
	}
}

// attribute handles name="value" and name={expr} pairs. Literal className
// values are split into tokens; other values are walked for nested markup.
func (w *walker) attribute(n *sitter.Node) {
	if n.NamedChildCount() < 2 {
		return
	}
	name := n.NamedChild(0)
	value := n.NamedChild(1)

	if value.Type() == "string" {
		if name.Content(w.src) == ClassAttribute {
			w.addTokens(unquote(value.Content(w.src)))
		}
		return
	}
	w.visit(value)
}

func (w *walker) addTokens(literal string) {
	for _, tok := range strings.Fields(literal) {
		w.names.Add(tok)
	}
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
