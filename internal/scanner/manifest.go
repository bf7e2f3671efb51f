package scanner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/modaudit/modaudit/internal/models"
)

// ManifestName is the manifest file read from each module root.
const ManifestName = "composer.json"

// Bridge package conventions for the target theme framework. A module is
// compatibility-aware when its own package name carries the bridge token
// or it depends on a package from the bridge vendor namespace.
const (
	bridgeToken  = "hyva"
	bridgeVendor = "hyva-themes/"
)

// manifest mirrors the subset of composer.json the scanner cares about.
type manifest struct {
	Name    string            `json:"name"`
	Version string            `json:"version"`
	Require map[string]string `json:"require"`
}

// ModuleInfo reads the manifest at the module root and derives identity
// and compatibility-awareness metadata. A missing or malformed manifest
// degrades to {Unknown, Unknown, false} rather than failing the scan.
func (s *Scanner) ModuleInfo(path string) models.ModuleInfo {
	data, err := os.ReadFile(filepath.Join(path, ManifestName))
	if err != nil {
		return models.UnknownModuleInfo()
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return models.UnknownModuleInfo()
	}

	info := models.UnknownModuleInfo()
	if m.Name != "" {
		info.Name = m.Name
	}
	if m.Version != "" {
		info.Version = m.Version
	}
	info.Aware = isAware(m)
	return info
}

func isAware(m manifest) bool {
	if strings.Contains(strings.ToLower(m.Name), bridgeToken) {
		return true
	}
	for dep := range m.Require {
		if strings.HasPrefix(strings.ToLower(dep), bridgeVendor) {
			return true
		}
	}
	return false
}
