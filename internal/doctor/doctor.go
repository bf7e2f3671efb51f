// Package doctor probes the local environment for everything a check run
// needs: the platform root, a detectable module layout, and optional
// policy and config files. Injectable deps make it fully testable.
package doctor

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/modaudit/modaudit/internal/registry"
)

// StatFunc matches the signature of os.Stat.
type StatFunc func(name string) (fs.FileInfo, error)

// GetenvFunc matches the signature of os.Getenv.
type GetenvFunc func(key string) string

// Doctor runs environment checks against a platform root.
type Doctor struct {
	stat     StatFunc
	getenv   GetenvFunc
	registry *registry.Registry
}

// New creates a Doctor with the given dependency functions.
func New(stat StatFunc, getenv GetenvFunc, reg *registry.Registry) *Doctor {
	return &Doctor{stat: stat, getenv: getenv, registry: reg}
}

// Default creates a Doctor backed by the real filesystem and environment.
func Default() *Doctor {
	return New(os.Stat, os.Getenv, registry.New())
}

// CheckStatus is the outcome of one environment check.
type CheckStatus struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Detail  string `json:"detail,omitempty"`
	Blocker bool   `json:"blocker"`
}

// Diagnosis is the complete result of a doctor run.
type Diagnosis struct {
	Checks   []CheckStatus `json:"checks"`
	Healthy  bool          `json:"healthy"`
	Locators []string      `json:"locators,omitempty"`
}

// Diagnose runs all environment checks against the given root.
func (d *Doctor) Diagnose(root string) *Diagnosis {
	diag := &Diagnosis{Healthy: true}

	add := func(c CheckStatus) {
		diag.Checks = append(diag.Checks, c)
		if !c.OK && c.Blocker {
			diag.Healthy = false
		}
	}

	// Root must exist and be a directory.
	info, err := d.stat(root)
	rootOK := err == nil && info.IsDir()
	add(CheckStatus{
		Name:    "platform root",
		OK:      rootOK,
		Detail:  root,
		Blocker: true,
	})
	if !rootOK {
		return diag
	}

	// At least one locator must understand the layout.
	diag.Locators = d.registry.DetectedLocators(root)
	add(CheckStatus{
		Name:    "module layout",
		OK:      len(diag.Locators) > 0,
		Detail:  detailForLocators(diag.Locators),
		Blocker: true,
	})

	// Root composer manifest is informative, not required.
	_, err = d.stat(filepath.Join(root, "composer.json"))
	add(CheckStatus{
		Name:    "root manifest",
		OK:      err == nil,
		Detail:  "composer.json",
		Blocker: false,
	})

	// Optional config via environment.
	configured := d.getenv("MODAUDIT_ROOT") != "" || d.getenv("MODAUDIT_FORMAT") != ""
	add(CheckStatus{
		Name:    "environment overrides",
		OK:      true,
		Detail:  envDetail(configured),
		Blocker: false,
	})

	return diag
}

func detailForLocators(names []string) string {
	if len(names) == 0 {
		return "no app/code or vendor layout found"
	}
	detail := names[0]
	for _, n := range names[1:] {
		detail += ", " + n
	}
	return detail
}

func envDetail(configured bool) string {
	if configured {
		return "MODAUDIT_* variables set"
	}
	return "none set"
}
