// Package tsparse lowers TypeScript source into the syntax tree using the
// tree-sitter TypeScript grammar.
//
// Only declarations and type syntax are lowered. Statements, expressions and
// function bodies are skipped.
package tsparse

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/broady/typedesc/syntax"
)

// SyntaxError reports source that tree-sitter could not parse.
type SyntaxError struct {
	Span syntax.Span
}

func (e *SyntaxError) Error() string {
	if e.Span.Text == "" {
		return fmt.Sprintf("%s: syntax error", e.Span)
	}
	return fmt.Sprintf("%s: syntax error near %q", e.Span, firstLine(e.Span.Text))
}

// Parse parses the TypeScript source of the file at path. The path is
// recorded in spans; .tsx files are parsed with the TSX grammar.
func Parse(ctx context.Context, path string, src []byte) (*syntax.File, error) {
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("%s: content is not valid UTF-8", path)
	}

	// A parser is not safe for concurrent use; one per call.
	parser := sitter.NewParser()
	defer parser.Close()
	if strings.HasSuffix(path, ".tsx") {
		parser.SetLanguage(tsx.GetLanguage())
	} else {
		parser.SetLanguage(typescript.GetLanguage())
	}

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("%s: tree-sitter parse failed: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("%s: tree-sitter returned no root node", path)
	}

	l := &lowerer{path: path, src: src}
	if bad := firstError(root); bad != nil {
		return nil, &SyntaxError{Span: l.span(bad)}
	}

	f := &syntax.File{Path: path}
	for _, n := range namedChildren(root) {
		l.statement(n, f, &f.Decls, false)
	}
	return f, nil
}

type lowerer struct {
	path string
	src  []byte
}

func (l *lowerer) span(n *sitter.Node) syntax.Span {
	p := n.StartPoint()
	return syntax.Span{
		File:   l.path,
		Line:   int(p.Row) + 1,
		Column: int(p.Column) + 1,
		Text:   n.Content(l.src),
	}
}

func (l *lowerer) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(l.src)
}

// firstError returns the first ERROR or missing node under n.
func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return n
}

// namedChildren returns the named children of n, comments excluded.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		if c == nil || c.Type() == "comment" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// childOfType returns the first child of n with one of the given types.
func childOfType(n *sitter.Node, types ...string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		for _, t := range types {
			if c.Type() == t {
				return c
			}
		}
	}
	return nil
}

// hasToken reports whether n has a direct child token with the given type,
// such as "?", "static" or "abstract".
func hasToken(n *sitter.Node, token string) bool {
	return childOfType(n, token) != nil
}

// field returns the child for the first field name that is present.
func field(n *sitter.Node, names ...string) *sitter.Node {
	for _, name := range names {
		if c := n.ChildByFieldName(name); c != nil {
			return c
		}
	}
	return nil
}

// qualified splits a dotted name such as "a.b.c" written with arbitrary
// spacing.
func qualified(text string) []string {
	parts := strings.Split(text, ".")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
