// Package classify recognizes vitest framework calls in a syntax
// tree. For each call_expression it reports the canonical function
// name, the head identifier the call chain starts from, and whether
// that head is already bound to vitest through an import or require.
package classify

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/unbound-force/vitestlint/internal/jsparse"
	"github.com/unbound-force/vitestlint/internal/taxonomy"
)

// HeadKind describes how the head identifier of a call resolves.
type HeadKind string

// Head kind constants.
const (
	// HeadImport means the head is bound by an import or destructured
	// require of the vitest module.
	HeadImport HeadKind = "import"

	// HeadGlobal means no enclosing scope declares the head.
	HeadGlobal HeadKind = "global"
)

// Call is the classification of one call expression. The zero value
// means "not a framework call".
type Call struct {
	// Name is the canonical framework function, independent of any
	// local alias.
	Name taxonomy.FnName

	// Head is the leftmost identifier of the callee chain, e.g. the
	// `test` in `test.each(table)(name, fn)`.
	Head *sitter.Node

	// HeadKind is how Head resolves.
	HeadKind HeadKind

	// Members is the property chain after the head, e.g. ["each"].
	Members []string
}

// IsMatch reports whether the call is a framework call.
func (c Call) IsMatch() bool {
	return c.Name != ""
}

// Classify reports whether node is a call to a vitest framework
// function. Classify has no side effects.
func Classify(node *sitter.Node, src []byte) Call {
	if node == nil || node.Type() != "call_expression" {
		return Call{}
	}

	head, members, ok := calleeChain(node.ChildByFieldName("function"), src)
	if !ok {
		return Call{}
	}

	binding := Resolve(head, src)

	var canonical string
	var kind HeadKind
	switch binding.Kind {
	case BoundToVitest:
		canonical, kind = binding.Imported, HeadImport
	case Unbound:
		canonical, kind = head.Content(src), HeadGlobal
	default:
		return Call{}
	}

	name, err := taxonomy.ParseFnName(canonical)
	if err != nil {
		return Call{}
	}
	for _, m := range members {
		if !taxonomy.AcceptsMember(name, m) {
			return Call{}
		}
	}

	return Call{
		Name:     name,
		Head:     head,
		HeadKind: kind,
		Members:  members,
	}
}

// calleeChain flattens a callee into its head identifier and the
// property names that follow it. Callees that are themselves calls,
// as in test.each(table)(name, fn) or expect(x).toBe(y), are
// unwrapped to the inner callee.
func calleeChain(n *sitter.Node, src []byte) (*sitter.Node, []string, bool) {
	n = jsparse.Unwrap(n)
	if n == nil {
		return nil, nil, false
	}

	switch n.Type() {
	case "identifier":
		return n, nil, true

	case "member_expression":
		head, members, ok := calleeChain(n.ChildByFieldName("object"), src)
		if !ok {
			return nil, nil, false
		}
		prop := n.ChildByFieldName("property")
		if prop == nil || prop.Type() != "property_identifier" {
			return nil, nil, false
		}
		return head, append(members, prop.Content(src)), true

	case "subscript_expression":
		head, members, ok := calleeChain(n.ChildByFieldName("object"), src)
		if !ok {
			return nil, nil, false
		}
		key, isString := jsparse.StringValue(jsparse.Unwrap(n.ChildByFieldName("index")), src)
		if !isString {
			return nil, nil, false
		}
		return head, append(members, key), true

	case "call_expression":
		return calleeChain(n.ChildByFieldName("function"), src)
	}

	return nil, nil, false
}
