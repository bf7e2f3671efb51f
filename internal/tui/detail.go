package tui

import (
	"fmt"
	"path/filepath"
	"strings"
)

// detailHeight is the fixed number of lines for the detail panel.
const detailHeight = 5

// renderDetail produces the detail view for a selected issue row.
func renderDetail(row *issueRow, width int) string {
	if row == nil {
		return styleDetailPanel.Width(width).Render("No issue selected")
	}

	var b strings.Builder

	sevStyled := severityStyle(row.Severity).Render(strings.ToUpper(string(row.Severity)))
	b.WriteString(fmt.Sprintf("%s  %s / %s\n", sevStyled, row.Module, row.RuleID))
	b.WriteString(fmt.Sprintf("File: %s:%d\n", filepath.Join(row.Path, row.File), row.Line))
	b.WriteString(row.Description)

	return styleDetailPanel.Width(width).Render(b.String())
}
