package rule

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/unbound-force/vitestlint/internal/jsparse"
)

// Bindings maps a locally bound identifier to the module specifier it
// was imported from. It lives for one file's traversal.
type Bindings map[string]string

// ImportLookup is the read-only view of Bindings handed to other
// components.
type ImportLookup interface {
	From(local string) (string, bool)
}

// Track records every named and default specifier of an import
// declaration. Type-only imports bind no values and are ignored, as
// are namespace imports.
func (b Bindings) Track(stmt *sitter.Node, src []byte) {
	if jsparse.IsTypeOnlyImport(stmt) {
		return
	}
	source, ok := jsparse.ImportSource(stmt, src)
	if !ok {
		return
	}
	for _, ib := range jsparse.ImportBindings(stmt, src) {
		if ib.Kind == jsparse.ImportNamespace {
			continue
		}
		b[ib.Local] = source
	}
}

// From returns the module local was imported from.
func (b Bindings) From(local string) (string, bool) {
	source, ok := b[local]
	return source, ok
}
