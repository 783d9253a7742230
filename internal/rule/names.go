package rule

import (
	"sort"
	"strings"

	"github.com/unbound-force/vitestlint/internal/taxonomy"
)

// nameSet is a set of strings that remembers insertion order.
type nameSet struct {
	order []string
	seen  map[string]bool
}

func newNameSet(names ...string) *nameSet {
	s := &nameSet{seen: make(map[string]bool)}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name and reports whether it was new.
func (s *nameSet) Add(name string) bool {
	if s.seen[name] {
		return false
	}
	s.seen[name] = true
	s.order = append(s.order, name)
	return true
}

func (s *nameSet) Len() int {
	return len(s.order)
}

// Sorted returns the members in lexicographic order.
func (s *nameSet) Sorted() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	sort.Strings(out)
	return out
}

// WatchSet is the set of framework functions the rule reports.
type WatchSet map[taxonomy.FnName]bool

// NewWatchSet builds a WatchSet from names. An empty list selects
// every framework function.
func NewWatchSet(names []taxonomy.FnName) WatchSet {
	if len(names) == 0 {
		names = taxonomy.AllFunctions()
	}
	w := make(WatchSet, len(names))
	for _, n := range names {
		w[n] = true
	}
	return w
}

// Contains reports whether n is watched.
func (w WatchSet) Contains(n taxonomy.FnName) bool {
	return w[n]
}

// renderImport renders the module form of the declaration.
func renderImport(names []string) string {
	return "import { " + strings.Join(names, ", ") + " } from '" + taxonomy.Module + "';"
}

// renderRequire renders the script form of the declaration.
func renderRequire(names []string) string {
	return "const { " + strings.Join(names, ", ") + " } = require('" + taxonomy.Module + "');"
}

func render(isModule bool, names []string) string {
	if isModule {
		return renderImport(names)
	}
	return renderRequire(names)
}
