package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unbound-force/vitestlint/internal/taxonomy"
)

func sampleCheckResults() []taxonomy.FileResult {
	return []taxonomy.FileResult{
		{
			File:       "src/math.test.js",
			SourceType: taxonomy.SourceModule,
			Diagnostics: []taxonomy.Diagnostic{
				{
					ID:        "vi-0badc0de",
					Rule:      "prefer-importing-vitest-globals",
					Message:   "Import the following vitest functions from 'vitest': describe, it",
					File:      "src/math.test.js",
					Start:     taxonomy.Position{Line: 3, Column: 1},
					End:       taxonomy.Position{Line: 3, Column: 9},
					Functions: []taxonomy.FnName{taxonomy.Describe, taxonomy.It},
					Fix: &taxonomy.Fix{
						Text: "import { describe, it } from 'vitest';\n",
					},
				},
			},
		},
		{
			File:        "src/clean.test.ts",
			SourceType:  taxonomy.SourceModule,
			Diagnostics: []taxonomy.Diagnostic{},
		},
	}
}

// TestRenderCheckContent_EmptyResults verifies that an empty slice
// reports zero files and zero problems.
func TestRenderCheckContent_EmptyResults(t *testing.T) {
	output := renderCheckContent([]taxonomy.FileResult{})

	if !strings.Contains(output, "0 file(s)") {
		t.Errorf("expected output to contain '0 file(s)', got:\n%s", output)
	}
	if !strings.Contains(output, "0 problem(s)") {
		t.Errorf("expected output to contain '0 problem(s)', got:\n%s", output)
	}
	if !strings.Contains(output, "No implicit vitest globals found.") {
		t.Errorf("expected clean message, got:\n%s", output)
	}
}

// TestRenderCheckContent_WithDiagnostics verifies the file header,
// location, missing names, and fix preview are rendered.
func TestRenderCheckContent_WithDiagnostics(t *testing.T) {
	output := renderCheckContent(sampleCheckResults())

	for _, want := range []string{
		"2 file(s)",
		"1 problem(s)",
		"=== src/math.test.js ===",
		"3:1",
		"vi-0badc0de",
		"describe, it",
		"import { describe, it } from 'vitest';",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "src/clean.test.ts") {
		t.Errorf("clean files should not get a section, got:\n%s", output)
	}
}

// TestRenderCheckContent_Warnings verifies per-file warnings appear.
func TestRenderCheckContent_Warnings(t *testing.T) {
	results := []taxonomy.FileResult{{
		File:     "broken.test.js",
		Warnings: []string{"syntax errors found; results may be incomplete"},
	}}
	output := renderCheckContent(results)
	if !strings.Contains(output, "broken.test.js: syntax errors found") {
		t.Errorf("expected warning in output, got:\n%s", output)
	}
}

// TestCheckModel_Update covers window sizing, help toggling, and quit.
func TestCheckModel_Update(t *testing.T) {
	m := newCheckModel(sampleCheckResults())
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View before sizing = %q", got)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(checkModel)
	if !m.ready {
		t.Fatal("model not ready after WindowSizeMsg")
	}
	if m.viewport.Height != 22 {
		t.Errorf("viewport height = %d, want 22", m.viewport.Height)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = next.(checkModel)
	if !m.help.ShowAll {
		t.Error("expected '?' to toggle full help")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected 'q' to quit")
	}
}
