// Package taxonomy defines the vitest function enumeration, the
// diagnostic data model, and stable ID generation for vitestlint
// results.
package taxonomy

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"
)

// RuleName is the identifier reported with every diagnostic.
const RuleName = "prefer-importing-vitest-globals"

// Module is the specifier every framework function is imported from.
const Module = "vitest"

// SourceType selects which declaration syntax a fix emits.
type SourceType string

// Source type constants. The empty value means "derive from the file
// extension".
const (
	SourceModule   SourceType = "module"
	SourceScript   SourceType = "script"
	SourceCommonJS SourceType = "commonjs"
)

// IsModule reports whether import/export syntax is legal.
func (s SourceType) IsModule() bool {
	return s == SourceModule
}

// Valid reports whether s is a known source type or empty.
func (s SourceType) Valid() bool {
	switch s {
	case "", SourceModule, SourceScript, SourceCommonJS:
		return true
	}
	return false
}

// Position is a 1-based line and column pair. Column counts bytes
// from the start of the line.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Range is a half-open byte range [Start, End) into a source file.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// IsInsertion reports whether the range is empty.
func (r Range) IsInsertion() bool {
	return r.Start == r.End
}

// Fix is a single text replacement. An insertion has an empty Range.
type Fix struct {
	Range Range  `json:"range"`
	Text  string `json:"text"`
}

// Diagnostic is one reported problem in a file.
type Diagnostic struct {
	// ID is a stable identifier for diffing across runs.
	ID string `json:"id"`

	// Rule is the rule identifier.
	Rule string `json:"rule"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// File is the path of the offending file.
	File string `json:"file"`

	// Start and End delimit the anchor node.
	Start Position `json:"start"`
	End   Position `json:"end"`

	// Functions lists the violating canonical names in the order
	// they were first seen.
	Functions []FnName `json:"functions"`

	// Fix is the computed rewrite, nil when none applies.
	Fix *Fix `json:"fix,omitempty"`
}

// Location renders "file:line:col".
func (d Diagnostic) Location() string {
	return fmt.Sprintf("%s:%d:%d", d.File, d.Start.Line, d.Start.Column)
}

// FileResult is the outcome of checking one file.
type FileResult struct {
	// File is the path as given to the linter.
	File string `json:"file"`

	// SourceType is the effective source type used for the file.
	SourceType SourceType `json:"source_type"`

	// Diagnostics holds zero or one entries.
	Diagnostics []Diagnostic `json:"diagnostics"`

	// Source is the original file content.
	Source []byte `json:"-"`

	// Output is the content after applying fixes. Nil when no fix
	// was applied.
	Output []byte `json:"-"`

	// Warnings are non-fatal problems found while checking or
	// fixing the file.
	Warnings []string `json:"warnings,omitempty"`
}

// Fixed reports whether applying fixes changed the file.
func (r FileResult) Fixed() bool {
	return r.Output != nil && string(r.Output) != string(r.Source)
}

// Metadata holds run metadata.
type Metadata struct {
	Version   string        `json:"version"`
	Files     int           `json:"files"`
	Timestamp time.Time     `json:"-"`
	Duration  time.Duration `json:"-"`
	Warnings  []string      `json:"warnings"`
}

// MarshalJSON customizes JSON encoding to use duration_ms and
// ISO 8601 timestamp.
func (m Metadata) MarshalJSON() ([]byte, error) {
	type Alias Metadata
	ts := ""
	if !m.Timestamp.IsZero() {
		ts = m.Timestamp.UTC().Format(time.RFC3339)
	}
	return json.Marshal(&struct {
		Alias
		DurationMS int64  `json:"duration_ms"`
		Timestamp  string `json:"timestamp,omitempty"`
	}{
		Alias:      Alias(m),
		DurationMS: m.Duration.Milliseconds(),
		Timestamp:  ts,
	})
}

// GenerateID produces a stable, deterministic ID for a diagnostic.
// The ID is a sha256 hash truncated to 8 hex characters, prefixed
// with "vi-".
func GenerateID(file, rule string, line, column int) string {
	input := fmt.Sprintf("%s:%s:%d:%d", file, rule, line, column)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("vi-%x", hash[:4])
}
