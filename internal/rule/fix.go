package rule

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/unbound-force/vitestlint/internal/jsparse"
	"github.com/unbound-force/vitestlint/internal/taxonomy"
)

// DeclKind identifies the declaration a fix builds on.
type DeclKind string

// Existing declaration kinds.
const (
	DeclNone    DeclKind = "none"
	DeclImport  DeclKind = "import"
	DeclRequire DeclKind = "require"
)

// Synthesis is the outcome of the fix phase.
type Synthesis struct {
	// Fix is the single text edit for the file.
	Fix taxonomy.Fix

	// Existing is the declaration that was merged into, DeclNone
	// when a new declaration is inserted.
	Existing DeclKind

	// Names are the names the resulting declaration binds, sorted.
	Names []string
}

// Synthesize computes the fix for a non-empty collect result. It
// merges the pending names into the first import of vitest (module
// files only), else into the first destructuring require of vitest,
// else inserts a new declaration after a leading directive or before
// the anchor's top-level statement.
func Synthesize(program *sitter.Node, src []byte, c Collected, isModule bool) Synthesis {
	names := newNameSet()
	for _, n := range c.Pending {
		names.Add(string(n))
	}

	stmts := jsparse.Statements(program)

	if isModule {
		if imp := findVitestImport(stmts, src); imp != nil {
			for _, ib := range jsparse.ImportBindings(imp, src) {
				switch ib.Kind {
				case jsparse.ImportNamed:
					names.Add(ib.Imported)
				case jsparse.ImportDefault:
					names.Add(ib.Local)
				}
			}
			sorted := names.Sorted()
			return Synthesis{
				Fix:      replace(imp, renderImport(sorted)),
				Existing: DeclImport,
				Names:    sorted,
			}
		}
	}

	if decl, keys := findVitestRequire(stmts, src); decl != nil {
		for _, k := range keys {
			names.Add(k)
		}
		sorted := names.Sorted()
		return Synthesis{
			Fix:      replace(decl, renderRequire(sorted)),
			Existing: DeclRequire,
			Names:    sorted,
		}
	}

	sorted := names.Sorted()
	text := render(isModule, sorted)

	if len(stmts) > 0 && isDirective(stmts[0], src) {
		end := int(stmts[0].EndByte())
		return Synthesis{
			Fix:      taxonomy.Fix{Range: taxonomy.Range{Start: end, End: end}, Text: "\n" + text},
			Existing: DeclNone,
			Names:    sorted,
		}
	}

	at := int(c.Anchor.StartByte())
	if top := jsparse.TopLevel(c.Anchor); top != nil {
		at = int(top.StartByte())
	}
	return Synthesis{
		Fix:      taxonomy.Fix{Range: taxonomy.Range{Start: at, End: at}, Text: text + "\n"},
		Existing: DeclNone,
		Names:    sorted,
	}
}

func replace(n *sitter.Node, text string) taxonomy.Fix {
	return taxonomy.Fix{
		Range: taxonomy.Range{Start: int(n.StartByte()), End: int(n.EndByte())},
		Text:  text,
	}
}

// isDirective reports whether stmt is a bare string literal
// statement such as 'use strict'.
func isDirective(stmt *sitter.Node, src []byte) bool {
	if stmt.Type() != "expression_statement" || stmt.NamedChildCount() == 0 {
		return false
	}
	_, ok := jsparse.StringValue(stmt.NamedChild(0), src)
	return ok
}

// findVitestImport returns the first value import of vitest that has
// no namespace specifier.
func findVitestImport(stmts []*sitter.Node, src []byte) *sitter.Node {
	for _, stmt := range stmts {
		if stmt.Type() != "import_statement" || jsparse.IsTypeOnlyImport(stmt) {
			continue
		}
		if source, ok := jsparse.ImportSource(stmt, src); !ok || source != taxonomy.Module {
			continue
		}
		namespace := false
		for _, ib := range jsparse.ImportBindings(stmt, src) {
			if ib.Kind == jsparse.ImportNamespace {
				namespace = true
			}
		}
		if !namespace {
			return stmt
		}
	}
	return nil
}

// findVitestRequire returns the first single-declarator declaration
// of the form `const { a, b: c } = require('vitest')` whose keys are
// all simple accessors, along with those keys.
func findVitestRequire(stmts []*sitter.Node, src []byte) (*sitter.Node, []string) {
	for _, stmt := range stmts {
		decls := jsparse.Declarators(stmt)
		if len(decls) != 1 {
			continue
		}
		source, ok := jsparse.RequireSource(decls[0].ChildByFieldName("value"), src)
		if !ok || source != taxonomy.Module {
			continue
		}
		pattern := decls[0].ChildByFieldName("name")
		if pattern == nil || pattern.Type() != "object_pattern" {
			continue
		}
		if keys, ok := requireKeys(pattern, src); ok {
			return stmt, keys
		}
	}
	return nil, nil
}

// requireKeys returns the accessor name of every property of an
// object pattern. It fails on computed keys and rest elements.
func requireKeys(pattern *sitter.Node, src []byte) ([]string, bool) {
	var keys []string
	for i := 0; i < int(pattern.NamedChildCount()); i++ {
		prop := pattern.NamedChild(i)
		switch prop.Type() {
		case "shorthand_property_identifier_pattern":
			keys = append(keys, prop.Content(src))
		case "object_assignment_pattern":
			left := prop.ChildByFieldName("left")
			if left == nil || left.Type() != "shorthand_property_identifier_pattern" {
				return nil, false
			}
			keys = append(keys, left.Content(src))
		case "pair_pattern":
			key, ok := jsparse.PropertyKey(prop.ChildByFieldName("key"), src)
			if !ok {
				return nil, false
			}
			keys = append(keys, key)
		case "comment":
		default:
			return nil, false
		}
	}
	return keys, true
}
