package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/vitestlint/internal/taxonomy"
)

// TextOptions controls optional sections of the text report.
type TextOptions struct {
	// ShowFix prints the declaration each fix would write.
	ShowFix bool

	// Table appends a per-file table of problems.
	Table bool
}

// WriteText writes check results as human-readable styled text
// to the writer. Output uses lipgloss for color and formatting when
// the output is a TTY; degrades gracefully for pipes and CI.
func WriteText(w io.Writer, results []taxonomy.FileResult) error {
	return WriteTextOptions(w, results, TextOptions{ShowFix: true})
}

// WriteTextOptions is WriteText with explicit options.
func WriteTextOptions(w io.Writer, results []taxonomy.FileResult, opts TextOptions) error {
	s := DefaultStyles()

	problems := 0
	for _, r := range results {
		for _, d := range r.Diagnostics {
			problems++
			writeDiagnostic(w, d, s, opts)
		}
		for _, warn := range r.Warnings {
			fmt.Fprintln(w, s.Warning.Render(fmt.Sprintf("%s: warning: %s", r.File, warn)))
		}
	}

	if opts.Table && problems > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, problemTable(results, s))
	}

	summary := fmt.Sprintf("%d file(s) checked, %d problem(s) found", len(results), problems)
	style := s.Pass
	if problems > 0 {
		style = s.Fail
	}
	fmt.Fprintf(w, "\n%s\n", style.Render(summary))

	return nil
}

func writeDiagnostic(w io.Writer, d taxonomy.Diagnostic, s Styles, opts TextOptions) {
	fmt.Fprintf(w, "%s  %s\n", s.Location.Render(d.Location()), s.Rule.Render("("+d.Rule+")"))
	fmt.Fprintln(w, s.Message.Render(d.Message))
	if opts.ShowFix && d.Fix != nil {
		fmt.Fprintln(w, s.Message.Render(s.Muted.Render("fix: ")+s.FixText.Render(trimNewlines(d.Fix.Text))))
	}
}

// problemTable renders one row per diagnostic.
// Budget: 80 cols total. FILE=36, LINE=6, MISSING=26 plus borders.
func problemTable(results []taxonomy.FileResult, s Styles) string {
	const maxFile = 36
	const maxMissing = 26

	var rows [][]string
	for _, r := range results {
		for _, d := range r.Diagnostics {
			rows = append(rows, []string{
				truncateLeft(filepath.ToSlash(r.File), maxFile),
				fmt.Sprintf("%d:%d", d.Start.Line, d.Start.Column),
				truncate(joinNames(d.Functions), maxMissing),
			})
		}
	}

	return table.New().
		Width(80).
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			return s.TableCell
		}).
		Headers("FILE", "LINE", "MISSING").
		Rows(rows...).
		String()
}

func joinNames(names []taxonomy.FnName) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += string(n)
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// truncateLeft keeps the end of a path, which is the part that
// identifies the file.
func truncateLeft(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-(n-3):]
}

func trimNewlines(s string) string {
	for len(s) > 0 && s[0] == '\n' {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	return s
}
