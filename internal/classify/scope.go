package classify

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/unbound-force/vitestlint/internal/jsparse"
	"github.com/unbound-force/vitestlint/internal/taxonomy"
)

// BindingKind is the outcome of resolving an identifier.
type BindingKind int

// Binding kinds.
const (
	// Unbound means no enclosing scope declares the name.
	Unbound BindingKind = iota

	// BoundToVitest means the name comes from the vitest module.
	BoundToVitest

	// BoundLocally means the name is declared by something else: a
	// variable, a parameter, a function, or another module.
	BoundLocally
)

// Binding is the declaration an identifier resolves to.
type Binding struct {
	Kind BindingKind

	// Imported is the name exported by vitest for BoundToVitest
	// bindings. Default imports report the local name.
	Imported string
}

// Resolve walks the lexical scopes enclosing ident, innermost first,
// and returns the first declaration of its name. Hoisting of `var`
// out of nested blocks is not modelled.
func Resolve(ident *sitter.Node, src []byte) Binding {
	name := ident.Content(src)
	for scope := ident.Parent(); scope != nil; scope = scope.Parent() {
		if b, ok := declaredIn(scope, name, src); ok {
			return b
		}
	}
	return Binding{Kind: Unbound}
}

func declaredIn(scope *sitter.Node, name string, src []byte) (Binding, bool) {
	local := Binding{Kind: BoundLocally}

	switch scope.Type() {
	case "program", "statement_block", "switch_case", "switch_default", "class_static_block":
		for i := 0; i < int(scope.NamedChildCount()); i++ {
			if b, ok := declaredBy(scope.NamedChild(i), name, src); ok {
				return b, true
			}
		}

	case "function_declaration", "function_expression", "function",
		"generator_function_declaration", "generator_function",
		"arrow_function", "method_definition":
		if param := scope.ChildByFieldName("parameter"); param != nil && param.Content(src) == name {
			return local, true
		}
		if bindsName(scope.ChildByFieldName("parameters"), name, src) {
			return local, true
		}
		// A named function expression can refer to itself.
		switch scope.Type() {
		case "function_expression", "function", "generator_function":
			if id := scope.ChildByFieldName("name"); id != nil && id.Content(src) == name {
				return local, true
			}
		}

	case "catch_clause":
		if bindsName(scope.ChildByFieldName("parameter"), name, src) {
			return local, true
		}

	case "for_statement":
		if b, ok := declaredBy(scope.ChildByFieldName("initializer"), name, src); ok {
			return b, true
		}

	case "for_in_statement":
		if scope.ChildByFieldName("kind") != nil && bindsName(scope.ChildByFieldName("left"), name, src) {
			return local, true
		}

	case "class":
		if id := scope.ChildByFieldName("name"); id != nil && id.Content(src) == name {
			return local, true
		}
	}
	return Binding{}, false
}

// declaredBy checks whether a single statement declares name.
func declaredBy(stmt *sitter.Node, name string, src []byte) (Binding, bool) {
	if stmt == nil {
		return Binding{}, false
	}

	switch stmt.Type() {
	case "import_statement":
		return importDeclares(stmt, name, src)

	case "lexical_declaration", "variable_declaration":
		for _, d := range jsparse.Declarators(stmt) {
			if b, ok := declaratorDeclares(d, name, src); ok {
				return b, true
			}
		}

	case "function_declaration", "generator_function_declaration",
		"class_declaration", "abstract_class_declaration", "enum_declaration":
		if id := stmt.ChildByFieldName("name"); id != nil && id.Content(src) == name {
			return Binding{Kind: BoundLocally}, true
		}

	case "export_statement":
		return declaredBy(stmt.ChildByFieldName("declaration"), name, src)
	}
	return Binding{}, false
}

func importDeclares(stmt *sitter.Node, name string, src []byte) (Binding, bool) {
	if jsparse.IsTypeOnlyImport(stmt) {
		return Binding{}, false
	}
	source, _ := jsparse.ImportSource(stmt, src)
	for _, ib := range jsparse.ImportBindings(stmt, src) {
		if ib.Local != name {
			continue
		}
		if source != taxonomy.Module {
			return Binding{Kind: BoundLocally}, true
		}
		switch ib.Kind {
		case jsparse.ImportNamed:
			return Binding{Kind: BoundToVitest, Imported: ib.Imported}, true
		case jsparse.ImportDefault:
			return Binding{Kind: BoundToVitest, Imported: ib.Local}, true
		default:
			return Binding{Kind: BoundLocally}, true
		}
	}
	return Binding{}, false
}

func declaratorDeclares(d *sitter.Node, name string, src []byte) (Binding, bool) {
	pattern := d.ChildByFieldName("name")
	fromVitest := false
	if source, ok := jsparse.RequireSource(d.ChildByFieldName("value"), src); ok {
		fromVitest = source == taxonomy.Module && pattern != nil && pattern.Type() == "object_pattern"
	}

	for _, pb := range jsparse.PatternBindings(pattern, src) {
		if pb.Name != name {
			continue
		}
		if fromVitest && pb.Key != "" {
			return Binding{Kind: BoundToVitest, Imported: pb.Key}, true
		}
		return Binding{Kind: BoundLocally}, true
	}
	return Binding{}, false
}

func bindsName(pattern *sitter.Node, name string, src []byte) bool {
	if pattern == nil {
		return false
	}
	if pattern.Type() == "formal_parameters" {
		for i := 0; i < int(pattern.NamedChildCount()); i++ {
			if bindsName(pattern.NamedChild(i), name, src) {
				return true
			}
		}
		return false
	}
	for _, pb := range jsparse.PatternBindings(pattern, src) {
		if pb.Name == name {
			return true
		}
	}
	return false
}
