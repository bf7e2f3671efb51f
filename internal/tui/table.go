package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var tableColumns = []table.Column{
	{Title: "Severity", Width: 10},
	{Title: "Module", Width: 24},
	{Title: "File", Width: 38},
	{Title: "Line", Width: 6},
	{Title: "Rule", Width: 16},
}

// buildRows converts issue rows to table rows.
func buildRows(rows []issueRow) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, table.Row{
			strings.ToUpper(string(row.Severity)),
			truncate(row.Module, tableColumns[1].Width),
			truncate(row.File, tableColumns[2].Width),
			fmt.Sprintf("%d", row.Line),
			truncate(row.RuleID, tableColumns[4].Width),
		})
	}
	return out
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	const ellipsis = "..."
	if maxLen <= len(ellipsis) {
		return s[:maxLen]
	}
	return s[:maxLen-len(ellipsis)] + ellipsis
}

// newTable creates a bubbles table with standard columns and styling.
func newTable(rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(tableColumns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorAccent).
		Bold(false)
	t.SetStyles(s)

	return t
}
