// Package rule implements prefer-importing-vitest-globals: every call
// to a vitest framework function must go through a binding imported
// or required from 'vitest'. A file with offending calls gets exactly
// one diagnostic, anchored at the first offending call, carrying one
// fix that binds every missing name.
//
// The check runs in two phases. The collect phase walks the tree once,
// tracking import bindings and accumulating offending names. The fix
// phase then scans the top-level statements and computes the edit.
package rule

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/unbound-force/vitestlint/internal/jsparse"
	"github.com/unbound-force/vitestlint/internal/taxonomy"
)

// Options configures the rule.
type Options struct {
	// Types restricts the watched functions. Empty means all.
	Types []taxonomy.FnName

	// SourceType overrides the per-file source type. Empty derives
	// it from the file extension.
	SourceType taxonomy.SourceType
}

// SourceTypeFor returns the effective source type of path. `.cjs`
// and `.cts` files are CommonJS; everything else is a module unless
// configured otherwise.
func SourceTypeFor(path string, configured taxonomy.SourceType) taxonomy.SourceType {
	if configured != "" {
		return configured
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cjs", ".cts":
		return taxonomy.SourceCommonJS
	}
	return taxonomy.SourceModule
}

// Collect runs the collect phase over a parsed file.
func Collect(root *sitter.Node, src []byte, watch WatchSet) (Collected, Bindings) {
	bindings := Bindings{}
	collector := NewCollector(src, watch, bindings)

	jsparse.Walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "import_statement":
			bindings.Track(n, src)
		case "call_expression":
			collector.Visit(n)
		}
	})

	return collector.Result(), bindings
}

// Check runs the rule on f and returns its diagnostic, or nil when
// the file is compliant.
func Check(f *jsparse.File, opts Options) *taxonomy.Diagnostic {
	root := f.Root()
	collected, _ := Collect(root, f.Source, NewWatchSet(opts.Types))
	if collected.Empty() {
		return nil
	}

	isModule := SourceTypeFor(f.Path, opts.SourceType).IsModule()
	syn := Synthesize(root, f.Source, collected, isModule)

	line, col := jsparse.Point(collected.Anchor.StartPoint())
	endLine, endCol := jsparse.Point(collected.Anchor.EndPoint())
	fix := syn.Fix

	return &taxonomy.Diagnostic{
		ID:        taxonomy.GenerateID(f.Path, taxonomy.RuleName, line, col),
		Rule:      taxonomy.RuleName,
		Message:   Message(collected.Pending),
		File:      f.Path,
		Start:     taxonomy.Position{Line: line, Column: col},
		End:       taxonomy.Position{Line: endLine, Column: endCol},
		Functions: collected.Pending,
		Fix:       &fix,
	}
}

// Message renders the diagnostic text for the pending names.
func Message(pending []taxonomy.FnName) string {
	names := make([]string, len(pending))
	for i, n := range pending {
		names[i] = string(n)
	}
	return "Import the following vitest functions from '" + taxonomy.Module + "': " +
		strings.Join(names, ", ")
}
