package detector

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/modaudit/modaudit/internal/models"
)

// compiledRule pairs a rule with its compiled pattern.
type compiledRule struct {
	rule models.Rule
	re   *regexp.Regexp
}

// Detector tests file contents against the incompatibility rule table.
// It is immutable after construction and safe for concurrent use.
type Detector struct {
	byCategory map[models.FileCategory][]compiledRule
}

// New creates a Detector using the built-in rule table.
func New() *Detector {
	d, err := NewWithRules(DefaultRules)
	if err != nil {
		// DefaultRules patterns are static and covered by tests.
		panic(fmt.Sprintf("detector: invalid built-in rule: %v", err))
	}
	return d
}

// NewWithRules creates a Detector from an explicit rule table. It returns
// an error if any rule pattern fails to compile.
func NewWithRules(rules []models.Rule) (*Detector, error) {
	byCategory := make(map[models.FileCategory][]compiledRule)
	for _, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", rule.ID, err)
		}
		byCategory[rule.Category] = append(byCategory[rule.Category], compiledRule{rule: rule, re: re})
	}
	return &Detector{byCategory: byCategory}, nil
}

// Rules returns the flattened rule table in category order for display.
func (d *Detector) Rules() []models.Rule {
	var rules []models.Rule
	for _, cat := range []models.FileCategory{models.CategoryScript, models.CategoryMarkup, models.CategoryTemplate} {
		for _, cr := range d.byCategory[cat] {
			rules = append(rules, cr.rule)
		}
	}
	return rules
}

// DetectInFile scans one file against the rules for its category and
// returns the located issues. Matching is additive: a line may contribute
// one issue per matching rule, but repeated matches of the same rule
// within one line are not multiplied.
//
// A missing or unreadable file yields an empty list; read failures are
// never propagated so one bad file cannot abort a module scan.
func (d *Detector) DetectInFile(path string) []models.Issue {
	category, ok := models.CategoryForPath(path)
	if !ok {
		return nil
	}

	rules := d.byCategory[category]
	if len(rules) == 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	return d.detect(rules, string(data))
}

// DetectInText scans in-memory content as if it were a file of the given
// category. Exposed for rule-table tests and editor integrations.
func (d *Detector) DetectInText(category models.FileCategory, text string) []models.Issue {
	return d.detect(d.byCategory[category], text)
}

func (d *Detector) detect(rules []compiledRule, text string) []models.Issue {
	var issues []models.Issue
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		for _, cr := range rules {
			if cr.re.MatchString(line) {
				issues = append(issues, models.Issue{
					RuleID:      cr.rule.ID,
					Description: cr.rule.Description,
					Severity:    cr.rule.Severity,
					Line:        i + 1,
				})
			}
		}
	}
	return issues
}
