package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/modaudit/modaudit/internal/detector"
	"github.com/modaudit/modaudit/internal/models"
)

// excludedDirs are directory base names skipped at any depth: test trees,
// dependency caches, and nested vendor installs never ship to the storefront.
var excludedDirs = map[string]bool{
	"Test":         true,
	"tests":        true,
	"node_modules": true,
	"vendor":       true,
	".git":         true,
}

// Scanner walks a module's directory tree and delegates matching files to
// the detector. Safe for concurrent use across modules.
type Scanner struct {
	detector *detector.Detector
}

// New creates a Scanner backed by the given detector.
func New(d *detector.Detector) *Scanner {
	return &Scanner{detector: d}
}

// ScanModule recursively scans the module rooted at path and returns the
// accumulated result. A path that is not a directory yields an empty
// result. Unreadable subtrees are skipped, never fatal. The context is
// checked between files so an aborted scan still returns a valid partial
// result.
func (s *Scanner) ScanModule(ctx context.Context, path string) models.ScanResult {
	result := models.NewScanResult()

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return result
	}

	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if err != nil {
			// Unreadable entry: skip the subtree, keep scanning the rest.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != path && excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := models.CategoryForPath(p); !ok {
			return nil
		}

		rel, relErr := filepath.Rel(path, p)
		if relErr != nil {
			rel = p
		}
		result.Record(rel, s.detector.DetectInFile(p))
		return nil
	})

	return result
}
