package checker

import (
	"github.com/modaudit/modaudit/internal/models"
)

// Row is one module line prepared for table display.
type Row struct {
	Name        string
	Path        string
	Compatible  bool
	HasWarnings bool
	Aware       bool
	Critical    int
	Warnings    int
}

// Rows projects a report into display rows ordered by module name.
// Fully compatible, warning-free modules are omitted unless showAll is set.
func Rows(report *models.Report, showAll bool) []Row {
	var rows []Row
	for _, name := range report.SortedNames() {
		m := report.Modules[name]
		if !showAll && m.Clean() {
			continue
		}
		rows = append(rows, Row{
			Name:        name,
			Path:        m.Path,
			Compatible:  m.Compatible,
			HasWarnings: m.HasWarnings,
			Aware:       m.ModuleInfo.Aware,
			Critical:    m.ScanResult.CriticalIssues,
			Warnings:    m.ScanResult.WarningIssues(),
		})
	}
	return rows
}

// FileIssues is the per-file drill-down listing for one module.
type FileIssues struct {
	File   string
	Issues []models.Issue
}

// DetailedIssues projects a module report's per-file issues for drill-down
// display, ordered by file path. It is a pure projection: no counting or
// filtering happens here.
func DetailedIssues(m models.ModuleReport) []FileIssues {
	var out []FileIssues
	for _, file := range m.ScanResult.SortedFiles() {
		out = append(out, FileIssues{File: file, Issues: m.ScanResult.Files[file]})
	}
	return out
}
