package models

import "sort"

// Rule is one declarative incompatibility pattern. The full rule set is
// process-wide configuration, loaded once and never mutated.
type Rule struct {
	ID          string       `json:"id"`
	Category    FileCategory `json:"category"`
	Pattern     string       `json:"pattern"` // regular expression, matched per line
	Description string       `json:"description"`
	Severity    Severity     `json:"severity"`
}

// Issue is a single rule match in a single file. Line numbers are 1-based.
type Issue struct {
	RuleID      string   `json:"rule_id"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Line        int      `json:"line"`
}

// ScanResult is the outcome of scanning one module's directory tree.
// Files maps module-relative paths to the issues found in them; only files
// with at least one issue appear.
//
// Invariants: TotalIssues equals the sum of len(issues) over Files, and
// CriticalIssues equals the count of critical-severity issues over Files.
type ScanResult struct {
	Files          map[string][]Issue `json:"files"`
	TotalIssues    int                `json:"total_issues"`
	CriticalIssues int                `json:"critical_issues"`
}

// NewScanResult returns an empty result with an initialized file map.
func NewScanResult() ScanResult {
	return ScanResult{Files: make(map[string][]Issue)}
}

// Record stores the issues found in one file and updates the counters.
// Calling it with an empty slice is a no-op, so files without issues never
// appear in the map.
func (s *ScanResult) Record(relPath string, issues []Issue) {
	if len(issues) == 0 {
		return
	}
	s.Files[relPath] = issues
	for _, issue := range issues {
		s.TotalIssues++
		if issue.Severity == SeverityCritical {
			s.CriticalIssues++
		}
	}
}

// WarningIssues returns the non-critical share of the total, never negative.
func (s *ScanResult) WarningIssues() int {
	w := s.TotalIssues - s.CriticalIssues
	if w < 0 {
		return 0
	}
	return w
}

// SortedFiles returns the file paths with issues in lexical order for
// deterministic presentation.
func (s *ScanResult) SortedFiles() []string {
	paths := make([]string, 0, len(s.Files))
	for p := range s.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ModuleInfo is the identity metadata read from a module's composer
// manifest. Aware is true when the module declares itself, or one of its
// dependencies, as a compatibility bridge for the target framework.
type ModuleInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Aware   bool   `json:"aware"`
}

// UnknownModuleInfo is returned when a manifest is missing or unparseable.
func UnknownModuleInfo() ModuleInfo {
	return ModuleInfo{Name: "Unknown", Version: "Unknown", Aware: false}
}

// ModuleReport holds the full scan outcome for one module.
// Compatible and HasWarnings are independent: a module can be compatible
// yet still carry warnings.
type ModuleReport struct {
	Path        string     `json:"path"`
	Compatible  bool       `json:"compatible"`
	HasWarnings bool       `json:"has_warnings"`
	ScanResult  ScanResult `json:"scan_result"`
	ModuleInfo  ModuleInfo `json:"module_info"`
}

// NewModuleReport derives the compatibility booleans from the scan result.
func NewModuleReport(path string, sr ScanResult, info ModuleInfo) ModuleReport {
	return ModuleReport{
		Path:        path,
		Compatible:  sr.CriticalIssues == 0,
		HasWarnings: sr.TotalIssues > sr.CriticalIssues,
		ScanResult:  sr,
		ModuleInfo:  info,
	}
}

// Clean reports whether the module is fully compatible with no warnings.
func (m ModuleReport) Clean() bool {
	return m.Compatible && !m.HasWarnings
}

// Summary holds the running counters accumulated over all filtered-in
// modules of one check run.
type Summary struct {
	Total          int `json:"total"`
	Compatible     int `json:"compatible"`
	Incompatible   int `json:"incompatible"`
	Aware          int `json:"aware"`
	CriticalIssues int `json:"critical_issues"`
	WarningIssues  int `json:"warning_issues"`
}

// Add folds one module report into the counters. The fold is commutative
// (pure counter addition), so the final Summary is identical regardless of
// the order modules complete in.
func (s *Summary) Add(m ModuleReport) {
	s.Total++
	if m.Compatible {
		s.Compatible++
	} else {
		s.Incompatible++
	}
	if m.ModuleInfo.Aware {
		s.Aware++
	}
	s.CriticalIssues += m.ScanResult.CriticalIssues
	s.WarningIssues += m.ScanResult.WarningIssues()
}

// Report is the terminal output of a check run. Modules maps module name
// to its report; HasIncompatibilities is true when any module is not
// fully clean. Nothing is persisted implicitly; every run produces an
// independent Report.
type Report struct {
	Modules              map[string]ModuleReport `json:"modules"`
	Summary              Summary                 `json:"summary"`
	HasIncompatibilities bool                    `json:"has_incompatibilities"`
}

// NewReport returns an empty report with an initialized module map.
func NewReport() *Report {
	return &Report{Modules: make(map[string]ModuleReport)}
}

// Add merges one module's report under its name. This is the single
// aggregation point for concurrent scans: each name is inserted exactly
// once, and counter updates commute.
func (r *Report) Add(name string, m ModuleReport) {
	r.Modules[name] = m
	r.Summary.Add(m)
	if !m.Clean() {
		r.HasIncompatibilities = true
	}
}

// SortedNames returns module names in lexical order for deterministic
// presentation regardless of scan-completion order.
func (r *Report) SortedNames() []string {
	names := make([]string, 0, len(r.Modules))
	for name := range r.Modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
