package detector

import "github.com/modaudit/modaudit/internal/models"

// DefaultRules is the built-in incompatibility rule table. Adding a rule is
// a data change: every entry is matched per line against files of its
// category, so no code needs to know about individual patterns.
var DefaultRules = []models.Rule{
	// Script rules (.js)
	{
		ID:          "amd-define",
		Category:    models.CategoryScript,
		Pattern:     `define\s*\(\s*\[`,
		Description: "Legacy AMD module definition (RequireJS define) is not loaded by the target theme",
		Severity:    models.SeverityCritical,
	},
	{
		ID:          "amd-require",
		Category:    models.CategoryScript,
		Pattern:     `require\s*\(\s*\[`,
		Description: "Legacy AMD require call is not loaded by the target theme",
		Severity:    models.SeverityCritical,
	},
	{
		ID:          "ko-observable",
		Category:    models.CategoryScript,
		Pattern:     `\bko\.(observable|observableArray|computed)\b`,
		Description: "Knockout observable API is unavailable without the UI component runtime",
		Severity:    models.SeverityCritical,
	},
	{
		ID:          "mage-namespace",
		Category:    models.CategoryScript,
		Pattern:     `['"]mage/[A-Za-z0-9_./-]+['"]`,
		Description: "Reference to the platform's internal mage/ script namespace",
		Severity:    models.SeverityCritical,
	},
	{
		ID:          "jquery-ajax",
		Category:    models.CategoryScript,
		Pattern:     `(\$|jQuery)\.(ajax|get|post)\s*\(`,
		Description: "Direct jQuery AJAX call; prefer fetch or the theme's request helpers",
		Severity:    models.SeverityWarning,
	},

	// Markup rules (.xml layout)
	{
		ID:          "ui-component",
		Category:    models.CategoryMarkup,
		Pattern:     `<uiComponent\b`,
		Description: "Declarative uiComponent element requires the UI component runtime",
		Severity:    models.SeverityCritical,
	},
	{
		ID:          "block-remove",
		Category:    models.CategoryMarkup,
		Pattern:     `remove\s*=\s*"true"`,
		Description: "Forced block removal often targets blocks the target theme does not render",
		Severity:    models.SeverityWarning,
	},

	// Template rules (.phtml)
	{
		ID:          "inline-init",
		Category:    models.CategoryTemplate,
		Pattern:     `(x-magento-init|data-mage-init)`,
		Description: "Inline script bootstrap attribute depends on the legacy JS framework",
		Severity:    models.SeverityCritical,
	},
	{
		ID:          "jquery-dom",
		Category:    models.CategoryTemplate,
		Pattern:     `\$\([^)]*\)\.(append|prepend|html|text|addClass|removeClass|toggleClass|css|attr|on|click)\s*\(`,
		Description: "Chained jQuery DOM manipulation; the target theme ships without jQuery",
		Severity:    models.SeverityWarning,
	},
}
