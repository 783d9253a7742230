package jsparse

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Walk visits every named node under root depth-first in source
// order, root included.
func Walk(root *sitter.Node, fn func(*sitter.Node)) {
	iter := sitter.NewNamedIterator(root, sitter.DFSMode)
	for {
		n, err := iter.Next()
		if err != nil || n == nil {
			return
		}
		fn(n)
	}
}

// Statements returns the top-level statements of a program in
// source order, skipping comments and a leading hashbang line.
func Statements(program *sitter.Node) []*sitter.Node {
	var stmts []*sitter.Node
	for i := 0; i < int(program.NamedChildCount()); i++ {
		child := program.NamedChild(i)
		switch child.Type() {
		case "comment", "hash_bang_line":
			continue
		}
		stmts = append(stmts, child)
	}
	return stmts
}

// TopLevel returns the ancestor of n (or n itself) whose parent is
// the program node. It returns nil if n is the program.
func TopLevel(n *sitter.Node) *sitter.Node {
	for n != nil {
		parent := n.Parent()
		if parent == nil {
			return nil
		}
		if parent.Type() == "program" {
			return n
		}
		n = parent
	}
	return nil
}

// Same reports whether a and b denote the same syntax node.
func Same(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StartByte() == b.StartByte() &&
		a.EndByte() == b.EndByte() &&
		a.Type() == b.Type()
}

// Text returns the source text of n.
func Text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(src)
}

// StringValue returns the value of a string literal or of a template
// literal without substitutions. Escape sequences are kept verbatim.
func StringValue(n *sitter.Node, src []byte) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Type() {
	case "string":
		raw := n.Content(src)
		if len(raw) < 2 {
			return "", false
		}
		return raw[1 : len(raw)-1], true
	case "template_string":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if n.NamedChild(i).Type() == "template_substitution" {
				return "", false
			}
		}
		raw := n.Content(src)
		return strings.TrimSuffix(strings.TrimPrefix(raw, "`"), "`"), true
	}
	return "", false
}

// Unwrap strips parentheses and TypeScript-only wrappers such as
// non-null assertions and `as` casts.
func Unwrap(n *sitter.Node) *sitter.Node {
	for n != nil && n.NamedChildCount() > 0 {
		switch n.Type() {
		case "parenthesized_expression", "non_null_expression",
			"as_expression", "satisfies_expression":
			n = n.NamedChild(0)
		case "type_assertion":
			n = n.NamedChild(int(n.NamedChildCount()) - 1)
		default:
			return n
		}
	}
	return n
}

// HasChildOfType reports whether n has a direct child, named or
// anonymous, of the given type.
func HasChildOfType(n *sitter.Node, typ string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == typ {
			return true
		}
	}
	return false
}

// Point converts a tree-sitter point into 1-based line and column.
func Point(p sitter.Point) (line, column int) {
	return int(p.Row) + 1, int(p.Column) + 1
}
