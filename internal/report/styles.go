package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles defines the visual theme for terminal report output.
// Lipgloss automatically degrades to no-color when output is not a TTY.
type Styles struct {
	// Header is used for per-file headers.
	Header lipgloss.Style

	// Location styles file:line:col references.
	Location lipgloss.Style

	// Rule styles the rule identifier.
	Rule lipgloss.Style

	// Message styles diagnostic messages. Its width bounds wrapping.
	Message lipgloss.Style

	// FixText styles the rendered declaration of a fix.
	FixText lipgloss.Style

	// TableHeader styles the header row of tables.
	TableHeader lipgloss.Style

	// TableCell styles regular table cells.
	TableCell lipgloss.Style

	// Pass styles the clean summary.
	Pass lipgloss.Style

	// Fail styles the summary when problems were found.
	Fail lipgloss.Style

	// Added, Removed and HunkHeader color diff output.
	Added      lipgloss.Style
	Removed    lipgloss.Style
	HunkHeader lipgloss.Style

	// Border is used for table borders.
	Border lipgloss.Style

	// Muted is used for de-emphasized text.
	Muted lipgloss.Style

	// Warning styles run warnings.
	Warning lipgloss.Style
}

// DefaultStyles returns the default color scheme for terminal reports.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Location: lipgloss.NewStyle().Bold(true),
		Rule:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Message:  lipgloss.NewStyle().PaddingLeft(4).Width(76),
		FixText:  lipgloss.NewStyle().Foreground(lipgloss.Color("75")),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		TableCell:   lipgloss.NewStyle().PaddingRight(1),

		Pass: lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true),
		Fail: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),

		Added:      lipgloss.NewStyle().Foreground(lipgloss.Color("40")).TabWidth(lipgloss.NoTabConversion),
		Removed:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).TabWidth(lipgloss.NoTabConversion),
		HunkHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),

		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),

		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	}
}
