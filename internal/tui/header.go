package tui

import (
	"fmt"
	"strings"

	"github.com/modaudit/modaudit/internal/models"
)

// headerHeight is the number of terminal lines the header occupies.
const headerHeight = 5

// renderHeader produces the header string from report summary data.
func renderHeader(summary models.Summary, width int) string {
	var b strings.Builder

	// Line 1: title and verdict
	verdict := "COMPATIBLE"
	style := statusStyle(true, false)
	switch {
	case summary.CriticalIssues > 0:
		verdict = "INCOMPATIBLE"
		style = statusStyle(false, false)
	case summary.WarningIssues > 0:
		verdict = "WARNINGS"
		style = statusStyle(true, true)
	}
	b.WriteString(fmt.Sprintf("ModAudit  Verdict: %s\n", style.Render(verdict)))

	// Line 2: module counts
	b.WriteString(fmt.Sprintf("Modules: %d  Compatible: %d  Incompatible: %d  Bridge-aware: %d\n",
		summary.Total, summary.Compatible, summary.Incompatible, summary.Aware))

	// Line 3: severity breakdown
	parts := make([]string, 0, 2)
	if summary.CriticalIssues > 0 {
		parts = append(parts, severityStyle(models.SeverityCritical).Render(
			fmt.Sprintf("critical:%d", summary.CriticalIssues)))
	}
	if summary.WarningIssues > 0 {
		parts = append(parts, severityStyle(models.SeverityWarning).Render(
			fmt.Sprintf("warning:%d", summary.WarningIssues)))
	}
	if len(parts) == 0 {
		parts = append(parts, "no issues found")
	}
	b.WriteString(strings.Join(parts, "  "))

	return styleHeader.Width(width).Render(b.String())
}
