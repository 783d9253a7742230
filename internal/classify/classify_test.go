package classify_test

import (
	"context"
	"reflect"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/unbound-force/vitestlint/internal/classify"
	"github.com/unbound-force/vitestlint/internal/jsparse"
	"github.com/unbound-force/vitestlint/internal/taxonomy"
)

// lastCall parses code and returns the outermost call_expression of
// the last top-level expression statement.
func lastCall(t *testing.T, path, code string) (*sitter.Node, []byte) {
	t.Helper()
	f, err := jsparse.Parse(context.Background(), path, []byte(code))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	t.Cleanup(f.Close)

	stmts := jsparse.Statements(f.Root())
	if len(stmts) == 0 {
		t.Fatal("no statements")
	}
	last := stmts[len(stmts)-1]
	if last.Type() != "expression_statement" {
		t.Fatalf("last statement is %s", last.Type())
	}
	return last.NamedChild(0), f.Source
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		want    taxonomy.FnName
		kind    classify.HeadKind
		members []string
	}{
		{name: "bare global", code: "describe('x', () => {});", want: taxonomy.Describe, kind: classify.HeadGlobal},
		{name: "modifier", code: "test.skip('x');", want: taxonomy.Test, kind: classify.HeadGlobal, members: []string{"skip"}},
		{name: "each table", code: "test.each([1, 2])('x %s', () => {});", want: taxonomy.Test, kind: classify.HeadGlobal, members: []string{"each"}},
		{name: "tagged each", code: "it.each`a | b`('x', () => {});", want: taxonomy.It, kind: classify.HeadGlobal, members: []string{"each"}},
		{name: "chained modifiers", code: "describe.concurrent.only('x', () => {});", want: taxonomy.Describe, kind: classify.HeadGlobal, members: []string{"concurrent", "only"}},
		{name: "subscript modifier", code: "it['skip']('x');", want: taxonomy.It, kind: classify.HeadGlobal, members: []string{"skip"}},
		{name: "expect matcher", code: "expect(1).toBe(1);", want: taxonomy.Expect, kind: classify.HeadGlobal, members: []string{"toBe"}},
		{name: "expect static", code: "expect.soft(1).toBe(1);", want: taxonomy.Expect, kind: classify.HeadGlobal, members: []string{"soft", "toBe"}},
		{name: "vi member", code: "vi.fn();", want: taxonomy.Vi, kind: classify.HeadGlobal, members: []string{"fn"}},
		{name: "parenthesized", code: "(describe)('x');", want: taxonomy.Describe, kind: classify.HeadGlobal},
		{name: "named import", code: "import { test } from 'vitest';\ntest('x');", want: taxonomy.Test, kind: classify.HeadImport},
		{name: "aliased import", code: "import { it as check } from 'vitest';\ncheck('x');", want: taxonomy.It, kind: classify.HeadImport},
		{name: "default import", code: "import vitest from 'vitest';\nvitest.fn();", want: taxonomy.Vitest, kind: classify.HeadImport, members: []string{"fn"}},
		{name: "aliased require", code: "const { describe: d } = require('vitest');\nd('x');", want: taxonomy.Describe, kind: classify.HeadImport},
		{name: "import declared later", code: "test('x');\nimport { test } from 'vitest';\ntest.only('y');", want: taxonomy.Test, kind: classify.HeadImport, members: []string{"only"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, src := lastCall(t, "a.test.js", tt.code)
			got := classify.Classify(node, src)
			if !got.IsMatch() {
				t.Fatal("expected a framework call")
			}
			if got.Name != tt.want {
				t.Errorf("Name = %q, want %q", got.Name, tt.want)
			}
			if got.HeadKind != tt.kind {
				t.Errorf("HeadKind = %q, want %q", got.HeadKind, tt.kind)
			}
			if !reflect.DeepEqual(got.Members, tt.members) {
				t.Errorf("Members = %v, want %v", got.Members, tt.members)
			}
		})
	}
}

func TestClassify_NotFramework(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "unrelated function", code: "foo('x');"},
		{name: "unknown modifier", code: "describe.bogus('x');"},
		{name: "hook with modifier", code: "beforeEach.skip(() => {});"},
		{name: "computed member", code: "test[mode]('x');"},
		{name: "method on object", code: "obj.test('x');"},
		{name: "other module import", code: "import { test } from 'node:test';\ntest('x');"},
		{name: "namespace import", code: "import * as vitest from 'vitest';\nvitest.fn();"},
		{name: "local variable", code: "const expect = () => {};\nexpect(1);"},
		{name: "class", code: "class vi {}\nvi.fn();"},
		{name: "plain require", code: "const vi = require('vitest');\nvi.fn();"},
		{name: "other module require", code: "const { test } = require('tap');\ntest('x');"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, src := lastCall(t, "a.test.js", tt.code)
			if got := classify.Classify(node, src); got.IsMatch() {
				t.Errorf("expected no match, got %+v", got)
			}
		})
	}
}

func TestClassify_NonCall(t *testing.T) {
	node, src := lastCall(t, "a.js", "describe;")
	if got := classify.Classify(node, src); got.IsMatch() {
		t.Errorf("identifier classified as call: %+v", got)
	}
	if got := classify.Classify(nil, src); got.IsMatch() {
		t.Errorf("nil classified as call: %+v", got)
	}
}

func TestClassify_TypeScriptWrappers(t *testing.T) {
	node, src := lastCall(t, "a.test.ts", "(expect as any)(1).toBe(1);")
	got := classify.Classify(node, src)
	if got.Name != taxonomy.Expect {
		t.Errorf("Name = %q, want expect", got.Name)
	}
}

func TestResolve_Scopes(t *testing.T) {
	tests := []struct {
		name string
		code string
		want classify.BindingKind
	}{
		{name: "global", code: "x => test('y');", want: classify.Unbound},
		{name: "arrow parameter", code: "test => test('y');", want: classify.BoundLocally},
		{name: "function parameter", code: "(function (a, { test }) { test('y'); });", want: classify.BoundLocally},
		{name: "block let", code: "{ let test = 1; test('y'); }", want: classify.BoundLocally},
		{name: "catch parameter", code: "try {} catch (test) { test('y'); }", want: classify.BoundLocally},
		{name: "for initializer", code: "for (let test = 0; ; ) { test('y'); }", want: classify.BoundLocally},
		{name: "for of", code: "for (const test of fns) { test('y'); }", want: classify.BoundLocally},
		{name: "named function expression", code: "(function test() { test('y'); });", want: classify.BoundLocally},
		{name: "exported function", code: "export function test() {}\ntest('y');", want: classify.BoundLocally},
		{name: "vitest require", code: "var { test } = require('vitest');\ntest('y');", want: classify.BoundToVitest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := jsparse.Parse(context.Background(), "a.js", []byte(tt.code))
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			defer f.Close()

			var head *sitter.Node
			jsparse.Walk(f.Root(), func(n *sitter.Node) {
				if head != nil || n.Type() != "call_expression" {
					return
				}
				if fn := n.ChildByFieldName("function"); fn.Content(f.Source) == "test" {
					head = fn
				}
			})
			if head == nil || head.Type() != "identifier" {
				t.Fatalf("no call head found")
			}
			if got := classify.Resolve(head, f.Source); got.Kind != tt.want {
				t.Errorf("Resolve().Kind = %v, want %v", got.Kind, tt.want)
			}
		})
	}
}
