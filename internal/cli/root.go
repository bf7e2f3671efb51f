package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modaudit/modaudit/internal/config"
)

const (
	// Exit codes consumed by CI wrappers
	ExitOK           = 0 // Success
	ExitGateFail     = 1 // Critical issues or policy violations
	ExitInvalidInput = 2 // Bad arguments or malformed input files
	ExitRuntimeError = 3 // I/O, permissions, or runtime error
)

var (
	// Global config instance
	cfg *config.Config

	// Global flags
	configFile string
	verbose    bool
	debug      bool

	// version is injected from main via SetVersion.
	version = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "modaudit",
	Short: "ModAudit - module compatibility scanner for theme migrations",
	Long: `ModAudit scans the modules of a Magento-style platform installation for
code patterns that break under a lighter alternate rendering framework:
legacy AMD loader calls, Knockout observables, uiComponent layout elements,
inline script-bootstrap attributes, and jQuery DOM manipulation.

It produces a severity-classified, aggregated report for migration planning
and CI gating.

Quick start:
  modaudit doctor --root /srv/shop
  modaudit check --root /srv/shop
  modaudit check --root /srv/shop --third-party-only --format json

Other commands:
  modaudit list --root /srv/shop
  modaudit rules
  modaudit diff`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// Flags override config file values.
		if verbose {
			cfg.Verbose = true
		}
		if debug {
			cfg.Debug = true
		}
		return nil
	},
}

// SetVersion records the build version shown by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		os.Exit(HandleError(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./modaudit.yaml, ~/modaudit.yaml, or XDG config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"debug mode (very verbose)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ModAudit %s\n", version)
		fmt.Println("Module compatibility scanner for theme migrations")
	},
}

// HandleError determines the appropriate exit code for an error
func HandleError(err error) int {
	if err == nil {
		return ExitOK
	}

	switch err.(type) {
	case *ValidationError:
		return ExitInvalidInput
	case *GateError:
		return ExitGateFail
	default:
		return ExitRuntimeError
	}
}

// ValidationError represents bad input: unknown paths, malformed files.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// GateError represents a failed compatibility gate.
type GateError struct {
	Critical   int
	Violations int
}

func (e *GateError) Error() string {
	if e.Violations > 0 {
		return fmt.Sprintf("compatibility gate failed: %d policy violation(s)", e.Violations)
	}
	return fmt.Sprintf("compatibility gate failed: %d critical issue(s)", e.Critical)
}

// logVerbose prints a message if verbose mode is enabled
func logVerbose(format string, args ...interface{}) {
	if cfg != nil && cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[INFO] "+format+"\n", args...)
	}
}

// logDebug prints a message if debug mode is enabled
func logDebug(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// logError prints an error message
func logError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[ERROR] "+format+"\n", args...)
}
