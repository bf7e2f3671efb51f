package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/modaudit/modaudit/internal/checker"
	"github.com/modaudit/modaudit/internal/config"
	"github.com/modaudit/modaudit/internal/detector"
	"github.com/modaudit/modaudit/internal/models"
	"github.com/modaudit/modaudit/internal/policy"
	"github.com/modaudit/modaudit/internal/registry"
	"github.com/modaudit/modaudit/internal/reporter"
	"github.com/modaudit/modaudit/internal/scanner"
	"github.com/modaudit/modaudit/internal/storage"
	"github.com/modaudit/modaudit/internal/tui"
)

var (
	// Check command flags
	checkRoot           string
	checkFormat         string
	checkOutput         string
	checkJobs           int
	checkShowAll        bool
	checkThirdPartyOnly bool
	checkExcludeVendor  bool
	checkDetails        bool
	checkStore          bool
	checkFailOnCritical bool
	checkInteractive    bool
	checkModuleMap      string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Scan all modules and report theme compatibility",
	Long: `Scan every module known to the platform installation for incompatible
code patterns and aggregate the results into a compatibility report.

The command will:
1. Resolve the module registry (app/code, vendor, or an explicit map file)
2. Scan each module's scripts, layout files, and templates concurrently
3. Read each module's composer manifest for bridge-awareness
4. Aggregate per-module results into a summary
5. Output the report in the chosen format and optionally store the run
6. Apply the policy gate for CI

Example:
  modaudit check --root /srv/shop
  modaudit check --root /srv/shop --third-party-only --exclude-vendor
  modaudit check --root /srv/shop --format json --output report.json
  modaudit check --root /srv/shop --fail-on-critical --store`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkRoot, "root", "",
		"platform root to scan (default from config)")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "",
		"output format: text, json, or markdown (default from config)")
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "",
		"output file path (default: stdout)")
	checkCmd.Flags().IntVar(&checkJobs, "jobs", 0,
		"concurrent module scans (default from config)")
	checkCmd.Flags().BoolVarP(&checkShowAll, "all", "a", false,
		"include fully compatible modules in output")
	checkCmd.Flags().BoolVar(&checkThirdPartyOnly, "third-party-only", false,
		"skip first-party platform modules")
	checkCmd.Flags().BoolVar(&checkExcludeVendor, "exclude-vendor", false,
		"skip composer vendor-installed modules")
	checkCmd.Flags().BoolVarP(&checkDetails, "details", "d", false,
		"include per-file issue details in text output")
	checkCmd.Flags().BoolVar(&checkStore, "store", false,
		"store this run for later diffing")
	checkCmd.Flags().BoolVar(&checkFailOnCritical, "fail-on-critical", false,
		"exit with code 1 when critical issues are found")
	checkCmd.Flags().BoolVarP(&checkInteractive, "interactive", "i", false,
		"browse results in an interactive terminal UI")
	checkCmd.Flags().StringVar(&checkModuleMap, "module-map", "",
		"explicit moduleName -> path YAML file instead of layout discovery")
}

func runCheck(cmd *cobra.Command, args []string) error {
	applyCheckDefaults()

	modules, err := resolveModules()
	if err != nil {
		return err
	}
	logVerbose("Registry resolved: %d modules", len(modules))

	// Stop scheduling new scans on interrupt; a partial report is still
	// valid and is reported as such.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := checker.New(scanner.New(detector.New()))
	start := time.Now()
	report := c.Check(ctx, modules, checker.Options{
		ThirdPartyOnly: checkThirdPartyOnly,
		ExcludeVendor:  checkExcludeVendor,
		Jobs:           checkJobs,
	})
	logVerbose("Scanned %d modules in %s", report.Summary.Total, time.Since(start).Round(time.Millisecond))
	logDebug("Summary: %+v", report.Summary)

	if checkStore {
		run := &storage.Run{Timestamp: time.Now(), Report: report}
		if err := storage.NewLocal(cfg.StorageDir).SaveRun(run); err != nil {
			logError("Failed to store run: %v", err)
		} else {
			logVerbose("Run stored in %s", cfg.StorageDir)
		}
	}

	if checkInteractive {
		if err := tui.Run(report); err != nil {
			return err
		}
		return gate(report)
	}

	if err := writeReport(report); err != nil {
		return err
	}
	return gate(report)
}

func applyCheckDefaults() {
	if checkRoot == "" {
		checkRoot = cfg.Root
	}
	if checkFormat == "" {
		checkFormat = cfg.Format
	}
	if checkJobs == 0 {
		checkJobs = cfg.Jobs
	}
	if checkModuleMap == "" {
		checkModuleMap = cfg.ModuleMap
	}
	checkShowAll = checkShowAll || cfg.ShowAll
	checkThirdPartyOnly = checkThirdPartyOnly || cfg.ThirdPartyOnly
	checkExcludeVendor = checkExcludeVendor || cfg.ExcludeVendor
	checkStore = checkStore || cfg.Store
	checkFailOnCritical = checkFailOnCritical || cfg.FailOnCritical
}

// resolveModules builds the registry for the configured root.
func resolveModules() (map[string]string, error) {
	root, err := (&config.Config{Root: checkRoot}).AbsRoot()
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	if checkModuleMap != "" {
		reg = registry.NewWithLocators(&registry.FileRegistry{Path: checkModuleMap})
	}

	modules, err := reg.Resolve(root)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	return modules, nil
}

// writeReport renders the report in the selected format.
func writeReport(report *models.Report) error {
	var out io.Writer = os.Stdout
	if checkOutput != "" {
		f, err := os.Create(checkOutput)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch checkFormat {
	case "json":
		return reporter.NewJSONReporter(out, true).Generate(report)
	case "markdown":
		return reporter.NewMarkdownReporter(out, checkShowAll).Generate(report)
	default:
		return reporter.NewTextReporter(out, checkShowAll, checkDetails).Generate(report)
	}
}

// gate applies the policy file and the fail-on-critical switch.
func gate(report *models.Report) error {
	policyPath := cfg.PolicyFile
	if policyPath == "" {
		policyPath = policy.FindPolicyFile()
	}

	if policyPath != "" {
		p, err := policy.LoadFromFile(policyPath)
		if err != nil {
			return &ValidationError{Message: err.Error()}
		}
		result := p.Evaluate(report)
		if !result.Pass {
			for _, v := range result.Violations {
				logError("policy %s: %s", v.Rule, v.Message)
			}
			return &GateError{Violations: len(result.Violations)}
		}
		logVerbose("Policy %s passed", policyPath)
	}

	if checkFailOnCritical && report.Summary.CriticalIssues > 0 {
		return &GateError{Critical: report.Summary.CriticalIssues}
	}
	return nil
}
