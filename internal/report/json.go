// Package report provides output formatters for vitestlint results
// in JSON, human-readable text, and unified diff formats.
package report

import (
	"encoding/json"
	"io"

	"github.com/unbound-force/vitestlint/internal/taxonomy"
)

// JSONReport is the top-level JSON output structure.
type JSONReport struct {
	Version  string                `json:"version"`
	Metadata *taxonomy.Metadata    `json:"metadata,omitempty"`
	Results  []taxonomy.FileResult `json:"results"`
}

// WriteJSON writes check results as formatted JSON to the writer.
// meta may be nil.
func WriteJSON(w io.Writer, results []taxonomy.FileResult, meta *taxonomy.Metadata, version string) error {
	if results == nil {
		results = []taxonomy.FileResult{}
	}
	for i := range results {
		if results[i].Diagnostics == nil {
			results[i].Diagnostics = []taxonomy.Diagnostic{}
		}
	}
	report := JSONReport{
		Version:  version,
		Metadata: meta,
		Results:  results,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
