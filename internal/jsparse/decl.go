package jsparse

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ImportKind distinguishes the specifier forms of an import clause.
type ImportKind int

// Import specifier kinds.
const (
	ImportNamed ImportKind = iota + 1
	ImportDefault
	ImportNamespace
)

// ImportBinding is one local name bound by an import declaration.
type ImportBinding struct {
	// Local is the name bound in the importing file.
	Local string

	// Imported is the exported name for named imports, "default"
	// for default imports and "*" for namespace imports.
	Imported string

	Kind ImportKind
}

// ImportSource returns the module specifier of an import_statement.
func ImportSource(stmt *sitter.Node, src []byte) (string, bool) {
	if stmt == nil || stmt.Type() != "import_statement" {
		return "", false
	}
	return StringValue(stmt.ChildByFieldName("source"), src)
}

// IsTypeOnlyImport reports whether stmt is `import type ...`.
func IsTypeOnlyImport(stmt *sitter.Node) bool {
	return stmt != nil && stmt.Type() == "import_statement" &&
		(HasChildOfType(stmt, "type") || HasChildOfType(stmt, "typeof"))
}

// ImportBindings lists the names bound by an import_statement, in
// source order.
//
// Handles:
//   - import foo from 'm'           (default)
//   - import * as foo from 'm'      (namespace)
//   - import { a, b as c } from 'm' (named)
//   - import foo, { a } from 'm'    (default + named)
func ImportBindings(stmt *sitter.Node, src []byte) []ImportBinding {
	if stmt == nil || stmt.Type() != "import_statement" {
		return nil
	}

	var out []ImportBinding
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		clause := stmt.NamedChild(i)
		if clause.Type() != "import_clause" {
			continue
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			part := clause.NamedChild(j)
			switch part.Type() {
			case "identifier":
				out = append(out, ImportBinding{
					Local:    part.Content(src),
					Imported: "default",
					Kind:     ImportDefault,
				})
			case "namespace_import":
				for k := 0; k < int(part.NamedChildCount()); k++ {
					if id := part.NamedChild(k); id.Type() == "identifier" {
						out = append(out, ImportBinding{
							Local:    id.Content(src),
							Imported: "*",
							Kind:     ImportNamespace,
						})
					}
				}
			case "named_imports":
				out = append(out, namedImports(part, src)...)
			}
		}
	}
	return out
}

func namedImports(node *sitter.Node, src []byte) []ImportBinding {
	var out []ImportBinding
	for i := 0; i < int(node.NamedChildCount()); i++ {
		spec := node.NamedChild(i)
		if spec.Type() != "import_specifier" {
			continue
		}
		name := spec.ChildByFieldName("name")
		if name == nil {
			continue
		}
		imported := name.Content(src)
		if v, ok := StringValue(name, src); ok {
			imported = v
		}
		local := imported
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			local = alias.Content(src)
		}
		out = append(out, ImportBinding{Local: local, Imported: imported, Kind: ImportNamed})
	}
	return out
}

// RequireSource returns the module of a `require('m')` call with a
// single string or template literal argument.
func RequireSource(call *sitter.Node, src []byte) (string, bool) {
	call = Unwrap(call)
	if call == nil || call.Type() != "call_expression" {
		return "", false
	}
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Type() != "identifier" || fn.Content(src) != "require" {
		return "", false
	}
	args := call.ChildByFieldName("arguments")
	if args == nil || args.Type() != "arguments" || args.NamedChildCount() != 1 {
		return "", false
	}
	return StringValue(args.NamedChild(0), src)
}

// PatternBinding is one name bound by a declaration pattern.
type PatternBinding struct {
	// Name is the bound local identifier.
	Name string

	// Key is the property accessor the name was destructured from,
	// empty when the name is not a direct object-pattern property.
	Key string
}

// Declarators returns the variable_declarator children of a
// lexical_declaration or variable_declaration.
func Declarators(decl *sitter.Node) []*sitter.Node {
	if decl == nil {
		return nil
	}
	switch decl.Type() {
	case "lexical_declaration", "variable_declaration":
	default:
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		if d := decl.NamedChild(i); d.Type() == "variable_declarator" {
			out = append(out, d)
		}
	}
	return out
}

// PatternBindings lists every identifier bound by a binding pattern.
func PatternBindings(pattern *sitter.Node, src []byte) []PatternBinding {
	var out []PatternBinding
	collectPattern(pattern, src, &out)
	return out
}

func collectPattern(n *sitter.Node, src []byte, out *[]PatternBinding) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		*out = append(*out, PatternBinding{Name: n.Content(src)})
	case "object_pattern":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			collectProperty(n.NamedChild(i), src, out)
		}
	case "array_pattern", "rest_pattern":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			collectPattern(n.NamedChild(i), src, out)
		}
	case "assignment_pattern":
		collectPattern(n.ChildByFieldName("left"), src, out)
	case "required_parameter", "optional_parameter":
		collectPattern(n.ChildByFieldName("pattern"), src, out)
	}
}

func collectProperty(prop *sitter.Node, src []byte, out *[]PatternBinding) {
	switch prop.Type() {
	case "shorthand_property_identifier_pattern":
		name := prop.Content(src)
		*out = append(*out, PatternBinding{Name: name, Key: name})
	case "object_assignment_pattern":
		left := prop.ChildByFieldName("left")
		if left != nil && left.Type() == "shorthand_property_identifier_pattern" {
			name := left.Content(src)
			*out = append(*out, PatternBinding{Name: name, Key: name})
			return
		}
		collectPattern(left, src, out)
	case "pair_pattern":
		value := prop.ChildByFieldName("value")
		key, simple := PropertyKey(prop.ChildByFieldName("key"), src)
		target := value
		if target != nil && target.Type() == "assignment_pattern" {
			target = target.ChildByFieldName("left")
		}
		if simple && target != nil && target.Type() == "identifier" {
			*out = append(*out, PatternBinding{Name: target.Content(src), Key: key})
			return
		}
		collectPattern(value, src, out)
	default:
		collectPattern(prop, src, out)
	}
}

// PropertyKey returns the accessor name of an object property key.
// Only identifiers and string literals are simple accessors; computed
// and numeric keys report false.
func PropertyKey(key *sitter.Node, src []byte) (string, bool) {
	if key == nil {
		return "", false
	}
	switch key.Type() {
	case "property_identifier", "identifier":
		return key.Content(src), true
	case "string":
		return StringValue(key, src)
	}
	return "", false
}
