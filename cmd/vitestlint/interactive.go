package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/vitestlint/internal/taxonomy"
)

// keyMap defines keybindings for the interactive TUI.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom},
		{k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("^/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("v/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// Styles for the TUI.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tuiHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	tuiBorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	fixStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cleanStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// checkModel is the Bubble Tea model for browsing check results.
type checkModel struct {
	results  []taxonomy.FileResult
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	ready    bool
	content  string
}

func newCheckModel(results []taxonomy.FileResult) checkModel {
	return checkModel{
		results: results,
		help:    help.New(),
		keys:    defaultKeyMap,
		content: renderCheckContent(results),
	}
}

func renderCheckContent(results []taxonomy.FileResult) string {
	var sb strings.Builder

	problems := countProblems(results)
	sb.WriteString(titleStyle.Render(
		fmt.Sprintf("vitestlint: %d file(s), %d problem(s)",
			len(results), problems)))
	sb.WriteString("\n\n")

	if problems == 0 {
		sb.WriteString(cleanStyle.Render("    No implicit vitest globals found."))
		sb.WriteString("\n")
	}

	for _, r := range results {
		for _, w := range r.Warnings {
			sb.WriteString(warnStyle.Render(fmt.Sprintf("    warning: %s: %s", r.File, w)))
			sb.WriteString("\n")
		}
		if len(r.Diagnostics) == 0 {
			continue
		}

		sb.WriteString(tuiHeaderStyle.Render(fmt.Sprintf("=== %s ===", r.File)))
		sb.WriteString("\n")
		sb.WriteString(statusStyle.Render(fmt.Sprintf("    source type: %s", r.SourceType)))
		sb.WriteString("\n")

		rows := make([][]string, 0, len(r.Diagnostics))
		for _, d := range r.Diagnostics {
			names := make([]string, len(d.Functions))
			for i, fn := range d.Functions {
				names[i] = string(fn)
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d:%d", d.Start.Line, d.Start.Column),
				d.ID,
				strings.Join(names, ", "),
			})
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(tuiBorderStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return tuiHeaderStyle
				}
				if col == 2 {
					return nameStyle
				}
				return lipgloss.NewStyle()
			}).
			Headers("LOCATION", "ID", "MISSING").
			Rows(rows...)

		sb.WriteString(t.String())
		sb.WriteString("\n")

		for _, d := range r.Diagnostics {
			if d.Fix == nil {
				continue
			}
			sb.WriteString(statusStyle.Render("    fix:"))
			sb.WriteString("\n")
			for _, line := range strings.Split(strings.Trim(d.Fix.Text, "\n"), "\n") {
				sb.WriteString(fixStyle.Render("      " + line))
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m checkModel) Init() tea.Cmd {
	return nil
}

func (m checkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		footerHeight := 2

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-footerHeight)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - footerHeight
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m checkModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	footer := statusStyle.Render(
		fmt.Sprintf(" %3.f%% ", m.viewport.ScrollPercent()*100)) +
		" " + m.help.View(m.keys)

	return m.viewport.View() + "\n" + footer
}

// runInteractiveCheck launches the Bubble Tea TUI for browsing
// check results.
func runInteractiveCheck(results []taxonomy.FileResult) error {
	model := newCheckModel(results)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
