package reporter

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/modaudit/modaudit/internal/checker"
	"github.com/modaudit/modaudit/internal/models"
)

// MarkdownReporter generates a Markdown report suitable for CI artifacts
// and merge-request comments.
type MarkdownReporter struct {
	writer  io.Writer
	showAll bool
}

// NewMarkdownReporter creates a Markdown reporter.
func NewMarkdownReporter(writer io.Writer, showAll bool) *MarkdownReporter {
	return &MarkdownReporter{writer: writer, showAll: showAll}
}

// Generate writes the report as Markdown.
func (r *MarkdownReporter) Generate(report *models.Report) error {
	md := markdown.NewMarkdown(r.writer)

	md.H1("Module Compatibility Report")
	md.PlainText("")

	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Modules scanned", strconv.Itoa(report.Summary.Total)},
			{"Compatible", strconv.Itoa(report.Summary.Compatible)},
			{"Incompatible", strconv.Itoa(report.Summary.Incompatible)},
			{"Bridge-aware", strconv.Itoa(report.Summary.Aware)},
			{"Critical issues", strconv.Itoa(report.Summary.CriticalIssues)},
			{"Warnings", strconv.Itoa(report.Summary.WarningIssues)},
		},
	})
	md.PlainText("")

	rows := checker.Rows(report, r.showAll)
	if len(rows) > 0 {
		md.H2("Modules")
		md.PlainText("")

		tableRows := make([][]string, 0, len(rows))
		for _, row := range rows {
			tableRows = append(tableRows, []string{
				"`" + row.Name + "`",
				statusText(row),
				strconv.Itoa(row.Critical),
				strconv.Itoa(row.Warnings),
				yesNo(row.Aware),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Module", "Status", "Critical", "Warnings", "Aware"},
			Rows:   tableRows,
		})
		md.PlainText("")

		r.writeDetails(md, report, rows)
	}

	return md.Build()
}

func (r *MarkdownReporter) writeDetails(md *markdown.Markdown, report *models.Report, rows []checker.Row) {
	for _, row := range rows {
		m := report.Modules[row.Name]
		if len(m.ScanResult.Files) == 0 {
			continue
		}

		md.H3(row.Name)
		md.PlainText("")

		var detailRows [][]string
		for _, fi := range checker.DetailedIssues(m) {
			for _, issue := range fi.Issues {
				detailRows = append(detailRows, []string{
					"`" + fi.File + "`",
					strconv.Itoa(issue.Line),
					string(issue.Severity),
					issue.Description,
				})
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"File", "Line", "Severity", "Issue"},
			Rows:   detailRows,
		})
		md.PlainText("")
	}
}
