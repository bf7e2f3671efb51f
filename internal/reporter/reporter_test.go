package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modaudit/modaudit/internal/models"
)

func sampleReport() *models.Report {
	report := models.NewReport()

	broken := models.NewScanResult()
	broken.Record("view/frontend/web/js/x.js", []models.Issue{
		{RuleID: "amd-define", Description: "Legacy AMD module definition", Severity: models.SeverityCritical, Line: 1},
		{RuleID: "jquery-ajax", Description: "Direct jQuery AJAX call", Severity: models.SeverityWarning, Line: 1},
	})
	report.Add("Acme_Foo", models.NewModuleReport("/mods/Acme_Foo", broken, models.UnknownModuleInfo()))

	report.Add("Acme_Clean", models.NewModuleReport("/mods/Acme_Clean", models.NewScanResult(),
		models.ModuleInfo{Name: "acme/clean", Version: "1.0.0", Aware: true}))

	return report
}

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextReporter(&buf, false, true).Generate(sampleReport()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"Modules scanned:   2",
		"Incompatible:      1",
		"Critical issues:   1",
		"Acme_Foo",
		"INCOMPATIBLE",
		"view/frontend/web/js/x.js",
		"L1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Acme_Clean") {
		t.Error("clean module shown without showAll")
	}
}

func TestTextReporterShowAll(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextReporter(&buf, true, false).Generate(sampleReport()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Acme_Clean") {
		t.Error("showAll must list clean modules")
	}
}

func TestJSONReporterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONReporter(&buf, true).Generate(sampleReport()); err != nil {
		t.Fatal(err)
	}

	var decoded models.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Summary.Total != 2 || decoded.Summary.CriticalIssues != 1 {
		t.Errorf("decoded summary = %+v", decoded.Summary)
	}
	if !decoded.HasIncompatibilities {
		t.Error("has_incompatibilities lost in serialization")
	}
	if len(decoded.Modules["Acme_Foo"].ScanResult.Files) != 1 {
		t.Error("per-file issues lost in serialization")
	}
}

func TestJSONReporterSummaryOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONReporter(&buf, false).GenerateSummaryOnly(sampleReport()); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := decoded["summary"]; !ok {
		t.Error("summary missing from compact output")
	}
	if _, ok := decoded["modules"]; ok {
		t.Error("compact output must not carry per-module data")
	}
}

func TestMarkdownReporter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewMarkdownReporter(&buf, false).Generate(sampleReport()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Module Compatibility Report",
		"## Summary",
		"## Modules",
		"`Acme_Foo`",
		"### Acme_Foo",
		"`view/frontend/web/js/x.js`",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
}
