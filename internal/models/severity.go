package models

import (
	"path/filepath"
	"strings"
)

// Severity classifies how badly a flagged pattern breaks under the
// target theme framework.
type Severity string

const (
	// SeverityCritical marks patterns expected to break functionality.
	SeverityCritical Severity = "critical"
	// SeverityWarning marks discouraged but likely tolerable patterns.
	SeverityWarning Severity = "warning"
)

// FileCategory groups scanned files by the kind of source they contain.
// Only these three categories carry detection rules.
type FileCategory string

const (
	CategoryScript   FileCategory = "script"   // .js
	CategoryMarkup   FileCategory = "markup"   // .xml layout files
	CategoryTemplate FileCategory = "template" // .phtml templates
)

// CategoryExtensions maps file extensions to their scan category.
var CategoryExtensions = map[string]FileCategory{
	".js":    CategoryScript,
	".xml":   CategoryMarkup,
	".phtml": CategoryTemplate,
}

// CategoryForPath returns the scan category for a file path based on its
// extension. The second return is false for extensions outside the three
// scanned categories.
func CategoryForPath(path string) (FileCategory, bool) {
	cat, ok := CategoryExtensions[strings.ToLower(filepath.Ext(path))]
	return cat, ok
}
