package tui

import (
	"sort"
	"strings"

	"github.com/modaudit/modaudit/internal/models"
)

// issueRow is one flattened issue prepared for the browser table.
type issueRow struct {
	Module      string
	Path        string
	File        string
	Line        int
	RuleID      string
	Description string
	Severity    models.Severity
}

// flattenReport converts a report into issue rows, one per located issue.
func flattenReport(report *models.Report) []issueRow {
	var rows []issueRow
	for _, name := range report.SortedNames() {
		m := report.Modules[name]
		for _, file := range m.ScanResult.SortedFiles() {
			for _, issue := range m.ScanResult.Files[file] {
				rows = append(rows, issueRow{
					Module:      name,
					Path:        m.Path,
					File:        file,
					Line:        issue.Line,
					RuleID:      issue.RuleID,
					Description: issue.Description,
					Severity:    issue.Severity,
				})
			}
		}
	}
	return rows
}

// filterState holds current active filters.
type filterState struct {
	Module     string
	Severity   models.Severity
	SearchText string
}

// sortField enumerates columns that can be sorted.
type sortField int

const (
	sortBySeverity sortField = iota
	sortByModule
	sortByFile
	sortByRule
)

// sortFieldCount is the total number of sortable columns.
const sortFieldCount = 4

var severityPriority = map[models.Severity]int{
	models.SeverityCritical: 0,
	models.SeverityWarning:  1,
}

// applyFilters returns issue rows matching all active filters.
func applyFilters(rows []issueRow, f filterState) []issueRow {
	result := make([]issueRow, 0, len(rows))
	searchLower := strings.ToLower(f.SearchText)

	for _, row := range rows {
		if f.Module != "" && row.Module != f.Module {
			continue
		}
		if f.Severity != "" && row.Severity != f.Severity {
			continue
		}
		if searchLower != "" && !matchesSearch(row, searchLower) {
			continue
		}
		result = append(result, row)
	}
	return result
}

func matchesSearch(row issueRow, searchLower string) bool {
	return strings.Contains(strings.ToLower(row.Module), searchLower) ||
		strings.Contains(strings.ToLower(row.File), searchLower) ||
		strings.Contains(strings.ToLower(row.RuleID), searchLower) ||
		strings.Contains(strings.ToLower(row.Description), searchLower) ||
		strings.Contains(strings.ToLower(string(row.Severity)), searchLower)
}

// sortRows sorts issue rows in place by the given field.
func sortRows(rows []issueRow, field sortField) {
	sort.SliceStable(rows, func(i, j int) bool {
		switch field {
		case sortBySeverity:
			return severityPriority[rows[i].Severity] < severityPriority[rows[j].Severity]
		case sortByModule:
			return rows[i].Module < rows[j].Module
		case sortByFile:
			if rows[i].File != rows[j].File {
				return rows[i].File < rows[j].File
			}
			return rows[i].Line < rows[j].Line
		case sortByRule:
			return rows[i].RuleID < rows[j].RuleID
		default:
			return false
		}
	})
}

// uniqueModules returns deduplicated, sorted module names from issue rows.
func uniqueModules(rows []issueRow) []string {
	seen := make(map[string]bool)
	var names []string
	for _, row := range rows {
		if !seen[row.Module] {
			seen[row.Module] = true
			names = append(names, row.Module)
		}
	}
	sort.Strings(names)
	return names
}

// sortFieldName returns a human-readable name for the sort field.
func sortFieldName(f sortField) string {
	switch f {
	case sortBySeverity:
		return "severity"
	case sortByModule:
		return "module"
	case sortByFile:
		return "file"
	case sortByRule:
		return "rule"
	default:
		return "unknown"
	}
}
