// Package registry resolves the set of modules known to a platform
// installation. Locators are tried in order until one detects the root
// layout it understands; adding a layout means adding a locator, not
// branching existing code.
package registry

import (
	"fmt"
	"sort"
)

// Locator detects one platform root layout and enumerates its modules.
type Locator interface {
	// Name identifies the locator in logs and doctor output.
	Name() string
	// Detect reports whether this locator understands the given root.
	Detect(root string) bool
	// Modules returns moduleName -> absolute module path for the root.
	Modules(root string) (map[string]string, error)
}

// Registry resolves modules by trying its locators in order.
type Registry struct {
	locators []Locator
}

// New creates a Registry with the default locator chain: an explicit
// module-map file wins over app/code, which wins over vendor installs.
func New() *Registry {
	return &Registry{locators: []Locator{
		&AppCodeLocator{},
		&VendorLocator{},
	}}
}

// NewWithLocators creates a Registry with an explicit locator chain.
func NewWithLocators(locators ...Locator) *Registry {
	return &Registry{locators: locators}
}

// Resolve returns the union of modules from every locator that detects the
// root. Locators earlier in the chain win name collisions.
func (r *Registry) Resolve(root string) (map[string]string, error) {
	modules := make(map[string]string)
	detected := false

	for _, loc := range r.locators {
		if !loc.Detect(root) {
			continue
		}
		detected = true
		found, err := loc.Modules(root)
		if err != nil {
			return nil, fmt.Errorf("locator %s: %w", loc.Name(), err)
		}
		for name, path := range found {
			if _, exists := modules[name]; !exists {
				modules[name] = path
			}
		}
	}

	if !detected {
		return nil, fmt.Errorf("no module layout detected at %s", root)
	}
	return modules, nil
}

// DetectedLocators returns the names of locators that match the root, in
// chain order. Used by the doctor command.
func (r *Registry) DetectedLocators(root string) []string {
	var names []string
	for _, loc := range r.locators {
		if loc.Detect(root) {
			names = append(names, loc.Name())
		}
	}
	return names
}

// SortedNames returns registry module names in lexical order.
func SortedNames(modules map[string]string) []string {
	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
