package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppCodeLocator enumerates first-class modules laid out as
// app/code/<Vendor>/<Name>, named <Vendor>_<Name>.
type AppCodeLocator struct{}

func (l *AppCodeLocator) Name() string { return "app-code" }

func (l *AppCodeLocator) Detect(root string) bool {
	info, err := os.Stat(filepath.Join(root, "app", "code"))
	return err == nil && info.IsDir()
}

func (l *AppCodeLocator) Modules(root string) (map[string]string, error) {
	base := filepath.Join(root, "app", "code")
	modules := make(map[string]string)

	vendors, err := os.ReadDir(base)
	if err != nil {
		return nil, err
	}
	for _, vendor := range vendors {
		if !vendor.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(base, vendor.Name()))
		if err != nil {
			// Unreadable vendor dir: skip it, keep the rest.
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			name := vendor.Name() + "_" + entry.Name()
			modules[name] = filepath.Join(base, vendor.Name(), entry.Name())
		}
	}
	return modules, nil
}

// VendorLocator enumerates composer-installed modules under
// vendor/<vendor>/<package>, keeping only directories that look like
// platform modules (they carry a registration.php).
type VendorLocator struct{}

func (l *VendorLocator) Name() string { return "vendor" }

func (l *VendorLocator) Detect(root string) bool {
	info, err := os.Stat(filepath.Join(root, "vendor"))
	return err == nil && info.IsDir()
}

func (l *VendorLocator) Modules(root string) (map[string]string, error) {
	base := filepath.Join(root, "vendor")
	modules := make(map[string]string)

	vendors, err := os.ReadDir(base)
	if err != nil {
		return nil, err
	}
	for _, vendor := range vendors {
		if !vendor.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(base, vendor.Name()))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			path := filepath.Join(base, vendor.Name(), entry.Name())
			if _, err := os.Stat(filepath.Join(path, "registration.php")); err != nil {
				continue
			}
			name := vendor.Name() + "_" + entry.Name()
			modules[name] = path
		}
	}
	return modules, nil
}

// FileRegistry reads an explicit moduleName -> path map from a YAML file.
// Relative paths are resolved against the scanned root. Intended for CI
// setups that pin the module set instead of discovering it.
type FileRegistry struct {
	Path string
}

func (l *FileRegistry) Name() string { return "file" }

func (l *FileRegistry) Detect(root string) bool {
	_, err := os.Stat(l.Path)
	return err == nil
}

func (l *FileRegistry) Modules(root string) (map[string]string, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("read module map: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse module map: %w", err)
	}

	modules := make(map[string]string, len(raw))
	for name, path := range raw {
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		modules[name] = path
	}
	return modules, nil
}
