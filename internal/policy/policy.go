package policy

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/modaudit/modaudit/internal/models"
)

// Policy defines gating rules applied to a check report, typically in CI.
type Policy struct {
	Version string `yaml:"version"`
	Rules   Rules  `yaml:"rules"`
}

// Rules contains all configurable policy rules. Nil pointers mean a rule
// is not enforced.
type Rules struct {
	MaxCritical  *int     `yaml:"max_critical,omitempty"`
	MaxTotal     *int     `yaml:"max_total,omitempty"`
	ForbidRules  []string `yaml:"forbid_rules,omitempty"`
	RequireAware bool     `yaml:"require_aware,omitempty"`
}

// Violation is a single policy failure.
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Result holds the outcome of a policy check.
type Result struct {
	Pass       bool        `json:"pass"`
	Violations []Violation `json:"violations"`
}

// LoadFromFile reads a policy file. A missing file yields a nil policy,
// which evaluates to pass.
func LoadFromFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read policy: %w", err)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}
	return &p, nil
}

// FindPolicyFile searches the current directory and its parents for a
// policy file, returning the first hit or an empty string.
func FindPolicyFile() string {
	names := []string{".modaudit-policy.yaml", ".modaudit-policy.yml"}

	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Evaluate checks a report against the policy rules. A nil policy passes.
func (p *Policy) Evaluate(report *models.Report) *Result {
	if p == nil {
		return &Result{Pass: true}
	}

	var violations []Violation

	if p.Rules.MaxCritical != nil && report.Summary.CriticalIssues > *p.Rules.MaxCritical {
		violations = append(violations, Violation{
			Rule: "max_critical",
			Message: fmt.Sprintf("critical issues %d exceed limit %d",
				report.Summary.CriticalIssues, *p.Rules.MaxCritical),
		})
	}

	total := report.Summary.CriticalIssues + report.Summary.WarningIssues
	if p.Rules.MaxTotal != nil && total > *p.Rules.MaxTotal {
		violations = append(violations, Violation{
			Rule:    "max_total",
			Message: fmt.Sprintf("total issues %d exceed limit %d", total, *p.Rules.MaxTotal),
		})
	}

	if len(p.Rules.ForbidRules) > 0 {
		forbidden := make(map[string]bool, len(p.Rules.ForbidRules))
		for _, id := range p.Rules.ForbidRules {
			forbidden[id] = true
		}
		hits := map[string]int{}
		for _, m := range report.Modules {
			for _, issues := range m.ScanResult.Files {
				for _, issue := range issues {
					if forbidden[issue.RuleID] {
						hits[issue.RuleID]++
					}
				}
			}
		}
		for _, id := range p.Rules.ForbidRules {
			if hits[id] > 0 {
				violations = append(violations, Violation{
					Rule:    "forbid_rules",
					Message: fmt.Sprintf("forbidden rule %q matched %d times", id, hits[id]),
				})
			}
		}
	}

	if p.Rules.RequireAware {
		for _, name := range report.SortedNames() {
			m := report.Modules[name]
			if !m.Compatible && !m.ModuleInfo.Aware {
				violations = append(violations, Violation{
					Rule: "require_aware",
					Message: fmt.Sprintf("incompatible module %s lacks a compatibility bridge package",
						name),
				})
			}
		}
	}

	return &Result{Pass: len(violations) == 0, Violations: violations}
}
