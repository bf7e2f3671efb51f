package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/modaudit/modaudit/internal/checker"
	"github.com/modaudit/modaudit/internal/models"
)

const defaultWidth = 100

// TextReporter generates human-readable text reports.
type TextReporter struct {
	writer  io.Writer
	width   int
	showAll bool
	details bool
}

// NewTextReporter creates a text reporter. Width follows the terminal when
// the writer is one, otherwise a fixed default.
func NewTextReporter(writer io.Writer, showAll, details bool) *TextReporter {
	width := defaultWidth
	if f, ok := writer.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 40 {
			width = w
		}
	}
	return &TextReporter{writer: writer, width: width, showAll: showAll, details: details}
}

// Generate writes the report.
func (r *TextReporter) Generate(report *models.Report) error {
	r.printHeader()
	r.printSummary(report.Summary)

	rows := checker.Rows(report, r.showAll)
	if len(rows) == 0 {
		if report.Summary.Total > 0 {
			r.printf("All %d scanned modules are compatible.\n", report.Summary.Total)
		} else {
			r.printf("No modules scanned.\n")
		}
		return nil
	}

	r.printRows(rows)

	if r.details {
		r.printDetails(report, rows)
	}
	return nil
}

func (r *TextReporter) printHeader() {
	r.printf("Module Compatibility Report\n")
	r.printf("%s\n\n", strings.Repeat("=", 27))
}

func (r *TextReporter) printSummary(s models.Summary) {
	r.printf("Summary:\n")
	r.printf("%s\n", strings.Repeat("-", 50))
	r.printf("  Modules scanned:   %d\n", s.Total)
	r.printf("  Compatible:        %d\n", s.Compatible)
	r.printf("  Incompatible:      %d\n", s.Incompatible)
	r.printf("  Bridge-aware:      %d\n", s.Aware)
	r.printf("  Critical issues:   %d\n", s.CriticalIssues)
	r.printf("  Warnings:          %d\n\n", s.WarningIssues)
}

func (r *TextReporter) printRows(rows []checker.Row) {
	nameW := len("MODULE")
	for _, row := range rows {
		if len(row.Name) > nameW {
			nameW = len(row.Name)
		}
	}
	if max := r.width / 3; nameW > max {
		nameW = max
	}

	r.printf("%-*s  %-12s  %8s  %8s  %s\n", nameW, "MODULE", "STATUS", "CRITICAL", "WARNINGS", "AWARE")
	r.printf("%s\n", strings.Repeat("-", r.width-2))
	for _, row := range rows {
		r.printf("%-*s  %-12s  %8d  %8d  %s\n",
			nameW, truncate(row.Name, nameW), statusText(row),
			row.Critical, row.Warnings, yesNo(row.Aware))
	}
	r.printf("\n")
}

func (r *TextReporter) printDetails(report *models.Report, rows []checker.Row) {
	for _, row := range rows {
		m := report.Modules[row.Name]
		if len(m.ScanResult.Files) == 0 {
			continue
		}
		r.printf("%s (%s)\n", row.Name, m.Path)
		r.printf("%s\n", strings.Repeat("-", 50))
		for _, fi := range checker.DetailedIssues(m) {
			r.printf("  %s\n", fi.File)
			for _, issue := range fi.Issues {
				r.printf("    L%-5d %-8s %s\n", issue.Line, issue.Severity, issue.Description)
			}
		}
		r.printf("\n")
	}
}

func statusText(row checker.Row) string {
	switch {
	case !row.Compatible:
		return "INCOMPATIBLE"
	case row.HasWarnings:
		return "WARNINGS"
	default:
		return "OK"
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func (r *TextReporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.writer, format, args...)
}
