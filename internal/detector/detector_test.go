package detector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/modaudit/modaudit/internal/models"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestDetectInFileScriptRules(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "widget.js", `define(['jquery', 'ko'], function ($, ko) {
    var total = ko.observable(0);
    $.ajax({url: '/cart'});
    var tpl = require('mage/template');
});
`)

	d := New()
	issues := d.DetectInFile(path)

	wantLines := map[string][]int{
		"amd-define":     {1},
		"ko-observable":  {2},
		"jquery-ajax":    {3},
		"mage-namespace": {4},
	}

	for _, issue := range issues {
		lines, ok := wantLines[issue.RuleID]
		if !ok {
			t.Errorf("unexpected rule match %q at line %d", issue.RuleID, issue.Line)
			continue
		}
		found := false
		for _, l := range lines {
			if issue.Line == l {
				found = true
			}
		}
		if !found {
			t.Errorf("rule %q matched line %d, want one of %v", issue.RuleID, issue.Line, lines)
		}
	}

	for ruleID := range wantLines {
		matched := false
		for _, issue := range issues {
			if issue.RuleID == ruleID {
				matched = true
			}
		}
		if !matched {
			t.Errorf("rule %q did not match", ruleID)
		}
	}
}

func TestDetectInFileDefineIsCriticalWithLineNumber(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "loader.js", "// header\n\ndefine([\n    'jquery'\n], function ($) {});\n")

	issues := New().DetectInFile(path)

	found := false
	for _, issue := range issues {
		if issue.RuleID == "amd-define" {
			found = true
			if issue.Severity != models.SeverityCritical {
				t.Errorf("amd-define severity = %s, want critical", issue.Severity)
			}
			if issue.Line != 3 {
				t.Errorf("amd-define line = %d, want 3", issue.Line)
			}
		}
	}
	if !found {
		t.Fatal("expected a critical amd-define issue")
	}
}

func TestDetectInFileMarkupRules(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "default.xml", `<page>
    <uiComponent name="checkout"/>
    <referenceBlock name="header.panel" remove="true"/>
</page>
`)

	issues := New().DetectInFile(path)

	var uiLine, removeLine int
	for _, issue := range issues {
		switch issue.RuleID {
		case "ui-component":
			uiLine = issue.Line
			if issue.Severity != models.SeverityCritical {
				t.Errorf("ui-component severity = %s, want critical", issue.Severity)
			}
		case "block-remove":
			removeLine = issue.Line
			if issue.Severity != models.SeverityWarning {
				t.Errorf("block-remove severity = %s, want warning", issue.Severity)
			}
		}
	}
	if uiLine != 2 {
		t.Errorf("ui-component line = %d, want 2", uiLine)
	}
	if removeLine != 3 {
		t.Errorf("block-remove line = %d, want 3", removeLine)
	}
}

func TestDetectInFileTemplateRules(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "list.phtml", `<div data-mage-init='{"catalog": {}}'>
<script>$('.price').addClass('old');</script>
</div>
`)

	issues := New().DetectInFile(path)

	got := map[string]models.Severity{}
	for _, issue := range issues {
		got[issue.RuleID] = issue.Severity
	}
	if got["inline-init"] != models.SeverityCritical {
		t.Errorf("inline-init severity = %s, want critical", got["inline-init"])
	}
	if got["jquery-dom"] != models.SeverityWarning {
		t.Errorf("jquery-dom severity = %s, want warning", got["jquery-dom"])
	}
}

// A line matching several rules reports every match; silent most-severe-only
// behavior would undercount remediation work.
func TestDetectIsAdditiveAcrossRules(t *testing.T) {
	line := `define(['jquery'], function ($) { $.ajax({url: '/x'}); });`
	issues := New().DetectInText(models.CategoryScript, line)

	var critical, warning int
	for _, issue := range issues {
		if issue.Line != 1 {
			t.Errorf("issue %q line = %d, want 1", issue.RuleID, issue.Line)
		}
		switch issue.Severity {
		case models.SeverityCritical:
			critical++
		case models.SeverityWarning:
			warning++
		}
	}
	if critical < 1 || warning < 1 {
		t.Errorf("got %d critical, %d warning; want at least one of each", critical, warning)
	}
}

// The same rule matching twice in one line yields one issue, not two.
func TestDetectSingleIssuePerRulePerLine(t *testing.T) {
	line := `$.ajax({}); $.ajax({});`
	issues := New().DetectInText(models.CategoryScript, line)

	count := 0
	for _, issue := range issues {
		if issue.RuleID == "jquery-ajax" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("jquery-ajax matched %d times on one line, want 1", count)
	}
}

func TestDetectInFileMissingFile(t *testing.T) {
	issues := New().DetectInFile(filepath.Join(t.TempDir(), "absent.js"))
	if len(issues) != 0 {
		t.Errorf("missing file yielded %d issues, want 0", len(issues))
	}
}

func TestDetectInFileUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Product.php", "define([\n")
	if issues := New().DetectInFile(path); len(issues) != 0 {
		t.Errorf("non-category file yielded %d issues, want 0", len(issues))
	}
}

func TestNewWithRulesRejectsBadPattern(t *testing.T) {
	_, err := NewWithRules([]models.Rule{{
		ID:       "broken",
		Category: models.CategoryScript,
		Pattern:  `(`,
		Severity: models.SeverityWarning,
	}})
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestRulesOrderedByCategory(t *testing.T) {
	rules := New().Rules()
	if len(rules) != len(DefaultRules) {
		t.Fatalf("Rules() returned %d rules, want %d", len(rules), len(DefaultRules))
	}
	seen := map[models.FileCategory]bool{}
	var lastCat models.FileCategory
	for _, r := range rules {
		if r.Category != lastCat && seen[r.Category] {
			t.Fatalf("category %s appears in non-contiguous blocks", r.Category)
		}
		seen[r.Category] = true
		lastCat = r.Category
	}
}
