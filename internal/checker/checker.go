package checker

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/modaudit/modaudit/internal/models"
	"github.com/modaudit/modaudit/internal/scanner"
)

// Filtering conventions for the scanned platform.
const (
	// firstPartyPrefix marks modules shipped with the platform itself.
	firstPartyPrefix = "Magento_"
	// vendorSegment marks composer-installed module paths.
	vendorSegment = "/vendor/"
)

// DefaultJobs is the worker-pool size used when Options.Jobs is unset.
const DefaultJobs = 8

// Options controls scope filtering and concurrency for one check run.
// ThirdPartyOnly and ExcludeVendor are independent filters that compose;
// neither implies the other.
type Options struct {
	ThirdPartyOnly bool
	ExcludeVendor  bool
	Jobs           int
}

// Checker orchestrates module scans over a registry and aggregates the
// per-module results into a process-wide report.
type Checker struct {
	scanner *scanner.Scanner
}

// New creates a Checker backed by the given scanner.
func New(s *scanner.Scanner) *Checker {
	return &Checker{scanner: s}
}

// scanned carries one completed module scan to the aggregator.
type scanned struct {
	name   string
	report models.ModuleReport
}

// Check scans every registry module that passes the scope filters and
// folds the results into a Report. Filters are applied before a module is
// counted, so skipped modules never reach the summary.
//
// Scans run concurrently; a single aggregator goroutine performs the merge
// so the counters and module map are identical regardless of completion
// order. Cancelling the context stops scheduling new scans and returns a
// valid partial report covering the modules that completed.
func (c *Checker) Check(ctx context.Context, registry map[string]string, opts Options) *models.Report {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = DefaultJobs
	}

	report := models.NewReport()
	results := make(chan scanned)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range results {
			report.Add(s.name, s.report)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for name, path := range registry {
		if opts.ExcludeVendor && isVendorPath(path) {
			continue
		}
		if opts.ThirdPartyOnly && isFirstParty(name) {
			continue
		}
		if gctx.Err() != nil {
			break
		}

		name, path := name, path
		g.Go(func() error {
			info := c.scanner.ModuleInfo(path)
			if gctx.Err() != nil {
				return nil
			}
			sr := c.scanner.ScanModule(gctx, path)
			if gctx.Err() != nil {
				// Drop partial module scans so the report only reflects
				// modules that completed.
				return nil
			}
			select {
			case results <- scanned{name: name, report: models.NewModuleReport(path, sr, info)}:
			case <-gctx.Done():
			}
			return nil
		})
	}

	_ = g.Wait()
	close(results)
	<-done

	return report
}

// isVendorPath reports whether a module path points at a composer vendor
// install location.
func isVendorPath(path string) bool {
	return strings.Contains(strings.ReplaceAll(path, "\\", "/"), vendorSegment)
}

// isFirstParty reports whether a declared module name follows the
// platform's first-party naming convention.
func isFirstParty(name string) bool {
	return strings.HasPrefix(name, firstPartyPrefix)
}
