package models

import (
	"testing"

	"github.com/go-test/deep"
)

func TestCategoryForPath(t *testing.T) {
	tests := []struct {
		path     string
		expected FileCategory
		ok       bool
	}{
		{"view/frontend/web/js/widget.js", CategoryScript, true},
		{"view/frontend/layout/default.xml", CategoryMarkup, true},
		{"view/frontend/templates/list.phtml", CategoryTemplate, true},
		{"view/frontend/web/js/Widget.JS", CategoryScript, true},
		{"Block/Product.php", "", false},
		{"styles.css", "", false},
		{"README", "", false},
	}

	for _, tt := range tests {
		cat, ok := CategoryForPath(tt.path)
		if ok != tt.ok || cat != tt.expected {
			t.Errorf("CategoryForPath(%q) = (%q, %v), want (%q, %v)",
				tt.path, cat, ok, tt.expected, tt.ok)
		}
	}
}

func TestScanResultRecord(t *testing.T) {
	sr := NewScanResult()

	sr.Record("a.js", []Issue{
		{RuleID: "amd-define", Severity: SeverityCritical, Line: 1},
		{RuleID: "jquery-ajax", Severity: SeverityWarning, Line: 4},
	})
	sr.Record("b.phtml", []Issue{
		{RuleID: "inline-init", Severity: SeverityCritical, Line: 10},
	})
	sr.Record("clean.xml", nil)

	if sr.TotalIssues != 3 {
		t.Errorf("TotalIssues = %d, want 3", sr.TotalIssues)
	}
	if sr.CriticalIssues != 2 {
		t.Errorf("CriticalIssues = %d, want 2", sr.CriticalIssues)
	}
	if sr.WarningIssues() != 1 {
		t.Errorf("WarningIssues() = %d, want 1", sr.WarningIssues())
	}
	if _, ok := sr.Files["clean.xml"]; ok {
		t.Error("file with no issues must not appear in Files")
	}

	// Counter invariants hold over the recorded map.
	total, critical := 0, 0
	for _, issues := range sr.Files {
		total += len(issues)
		for _, issue := range issues {
			if issue.Severity == SeverityCritical {
				critical++
			}
		}
	}
	if total != sr.TotalIssues || critical != sr.CriticalIssues {
		t.Errorf("counters (%d, %d) diverge from map contents (%d, %d)",
			sr.TotalIssues, sr.CriticalIssues, total, critical)
	}
}

func TestScanResultSortedFiles(t *testing.T) {
	sr := NewScanResult()
	sr.Record("z.js", []Issue{{RuleID: "r", Severity: SeverityWarning, Line: 1}})
	sr.Record("a.js", []Issue{{RuleID: "r", Severity: SeverityWarning, Line: 1}})
	sr.Record("m.xml", []Issue{{RuleID: "r", Severity: SeverityWarning, Line: 1}})

	got := sr.SortedFiles()
	want := []string{"a.js", "m.xml", "z.js"}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("SortedFiles() mismatch: %v", diff)
	}
}

func TestNewModuleReportFlags(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		critical    int
		compatible  bool
		hasWarnings bool
	}{
		{"clean", 0, 0, true, false},
		{"compatible with warnings", 2, 0, true, true},
		{"incompatible silent", 3, 3, false, false},
		{"incompatible with warnings", 5, 2, false, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			sr := ScanResult{
				Files:          map[string][]Issue{},
				TotalIssues:    tt.total,
				CriticalIssues: tt.critical,
			}
			rep := NewModuleReport("/mods/x", sr, UnknownModuleInfo())
			if rep.Compatible != tt.compatible {
				t.Errorf("Compatible = %v, want %v", rep.Compatible, tt.compatible)
			}
			if rep.HasWarnings != tt.hasWarnings {
				t.Errorf("HasWarnings = %v, want %v", rep.HasWarnings, tt.hasWarnings)
			}
		})
	}
}

func TestSummaryAddIsCommutative(t *testing.T) {
	reports := []ModuleReport{
		NewModuleReport("/mods/a", ScanResult{TotalIssues: 4, CriticalIssues: 1}, ModuleInfo{Aware: true}),
		NewModuleReport("/mods/b", ScanResult{TotalIssues: 2, CriticalIssues: 2}, UnknownModuleInfo()),
		NewModuleReport("/mods/c", ScanResult{}, ModuleInfo{Aware: true}),
	}

	var forward, backward Summary
	for i := range reports {
		forward.Add(reports[i])
		backward.Add(reports[len(reports)-1-i])
	}

	if diff := deep.Equal(forward, backward); diff != nil {
		t.Errorf("Summary differs by fold order: %v", diff)
	}
	if forward.Total != 3 || forward.Compatible != 1 || forward.Incompatible != 2 {
		t.Errorf("unexpected summary: %+v", forward)
	}
	if forward.Aware != 2 {
		t.Errorf("Aware = %d, want 2", forward.Aware)
	}
	if forward.CriticalIssues != 3 || forward.WarningIssues != 3 {
		t.Errorf("issue counters = (%d, %d), want (3, 3)",
			forward.CriticalIssues, forward.WarningIssues)
	}
}

func TestReportAddSetsIncompatibilityFlag(t *testing.T) {
	r := NewReport()
	r.Add("Acme_Clean", NewModuleReport("/mods/clean", NewScanResult(), UnknownModuleInfo()))
	if r.HasIncompatibilities {
		t.Error("clean module must not set HasIncompatibilities")
	}

	warned := NewScanResult()
	warned.Record("a.js", []Issue{{RuleID: "jquery-ajax", Severity: SeverityWarning, Line: 2}})
	r.Add("Acme_Warned", NewModuleReport("/mods/warned", warned, UnknownModuleInfo()))
	if !r.HasIncompatibilities {
		t.Error("compatible-with-warnings module must set HasIncompatibilities")
	}

	names := r.SortedNames()
	want := []string{"Acme_Clean", "Acme_Warned"}
	if diff := deep.Equal(names, want); diff != nil {
		t.Errorf("SortedNames() mismatch: %v", diff)
	}
}
