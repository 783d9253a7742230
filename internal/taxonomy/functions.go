package taxonomy

import "fmt"

// FnName is the canonical name of a vitest framework function.
type FnName string

// Suites and tests.
const (
	Suite    FnName = "suite"
	Test     FnName = "test"
	Describe FnName = "describe"
	It       FnName = "it"
)

// Assertions.
const (
	ExpectTypeOf FnName = "expectTypeOf"
	AssertType   FnName = "assertType"
	Expect       FnName = "expect"
	Assert       FnName = "assert"
)

// Utilities.
const (
	Vitest FnName = "vitest"
	Vi     FnName = "vi"
)

// Lifecycle hooks.
const (
	BeforeAll      FnName = "beforeAll"
	AfterAll       FnName = "afterAll"
	BeforeEach     FnName = "beforeEach"
	AfterEach      FnName = "afterEach"
	OnTestFailed   FnName = "onTestFailed"
	OnTestFinished FnName = "onTestFinished"
)

// Category groups framework functions by how their member chains
// are validated.
type Category string

// Category constants.
const (
	CategoryDescribe Category = "describe"
	CategoryTest     Category = "test"
	CategoryExpect   Category = "expect"
	CategoryVi       Category = "vi"
	CategoryHook     Category = "hook"
)

// allFunctions is ordered the way the option schema lists them.
var allFunctions = []FnName{
	Suite, Test, Describe, It,
	ExpectTypeOf, AssertType, Expect, Assert,
	Vitest, Vi,
	BeforeAll, AfterAll, BeforeEach, AfterEach,
	OnTestFailed, OnTestFinished,
}

var categoryMap = map[FnName]Category{
	Suite:    CategoryDescribe,
	Describe: CategoryDescribe,
	Test:     CategoryTest,
	It:       CategoryTest,

	ExpectTypeOf: CategoryExpect,
	AssertType:   CategoryExpect,
	Expect:       CategoryExpect,
	Assert:       CategoryExpect,

	Vitest: CategoryVi,
	Vi:     CategoryVi,

	BeforeAll:      CategoryHook,
	AfterAll:       CategoryHook,
	BeforeEach:     CategoryHook,
	AfterEach:      CategoryHook,
	OnTestFailed:   CategoryHook,
	OnTestFinished: CategoryHook,
}

// Modifiers accepted after describe/suite and test/it heads, e.g.
// describe.skip or test.concurrent.each.
var (
	describeModifiers = map[string]bool{
		"only": true, "skip": true, "todo": true, "each": true, "for": true,
		"concurrent": true, "sequential": true, "shuffle": true,
		"runIf": true, "skipIf": true,
	}
	testModifiers = map[string]bool{
		"only": true, "skip": true, "todo": true, "each": true, "for": true,
		"concurrent": true, "sequential": true, "fails": true,
		"runIf": true, "skipIf": true, "extend": true,
	}
)

// AllFunctions returns every canonical name in declaration order.
// The returned slice is a copy.
func AllFunctions() []FnName {
	out := make([]FnName, len(allFunctions))
	copy(out, allFunctions)
	return out
}

// Known reports whether s names a framework function.
func Known(s string) bool {
	_, ok := categoryMap[FnName(s)]
	return ok
}

// ParseFnName converts s to an FnName, rejecting unknown names.
func ParseFnName(s string) (FnName, error) {
	if !Known(s) {
		return "", fmt.Errorf("unknown vitest function %q", s)
	}
	return FnName(s), nil
}

// CategoryOf returns the category of a framework function.
func CategoryOf(n FnName) Category {
	return categoryMap[n]
}

// AcceptsMember reports whether member may follow n in a call chain.
// Assertion and utility heads accept any chain (matchers, vi.fn,
// expect.soft); hooks accept none.
func AcceptsMember(n FnName, member string) bool {
	switch CategoryOf(n) {
	case CategoryDescribe:
		return describeModifiers[member]
	case CategoryTest:
		return testModifiers[member]
	case CategoryExpect, CategoryVi:
		return true
	default:
		return false
	}
}
