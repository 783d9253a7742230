package rule

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/unbound-force/vitestlint/internal/classify"
	"github.com/unbound-force/vitestlint/internal/taxonomy"
)

// Collected is the immutable outcome of the collect phase.
type Collected struct {
	// Pending lists the names that must be bound to vitest, in the
	// order their first offending use was seen.
	Pending []taxonomy.FnName

	// Anchor is the head node of the first offending call.
	Anchor *sitter.Node
}

// Empty reports whether nothing needs importing.
func (c Collected) Empty() bool {
	return c.Anchor == nil
}

// Collector accumulates bare framework calls over one traversal.
type Collector struct {
	src     []byte
	watch   WatchSet
	imports ImportLookup

	pending []taxonomy.FnName
	seen    map[taxonomy.FnName]bool
	anchor  *sitter.Node
}

// NewCollector returns a Collector for one file.
func NewCollector(src []byte, watch WatchSet, imports ImportLookup) *Collector {
	return &Collector{
		src:     src,
		watch:   watch,
		imports: imports,
		seen:    make(map[taxonomy.FnName]bool),
	}
}

// Visit inspects one call_expression. Calls whose head is already
// bound to vitest, and calls outside the watch set, are ignored.
func (c *Collector) Visit(node *sitter.Node) {
	call := classify.Classify(node, c.src)
	if !call.IsMatch() {
		return
	}
	if call.HeadKind == classify.HeadImport {
		return
	}
	if source, ok := c.imports.From(call.Head.Content(c.src)); ok && source == taxonomy.Module {
		return
	}
	if !c.watch.Contains(call.Name) {
		return
	}

	if !c.seen[call.Name] {
		c.seen[call.Name] = true
		c.pending = append(c.pending, call.Name)
	}
	if c.anchor == nil {
		c.anchor = call.Head
	}
}

// Result returns a snapshot of what has been collected.
func (c *Collector) Result() Collected {
	pending := make([]taxonomy.FnName, len(c.pending))
	copy(pending, c.pending)
	return Collected{Pending: pending, Anchor: c.anchor}
}
