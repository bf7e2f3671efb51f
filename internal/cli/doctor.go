package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modaudit/modaudit/internal/config"
	"github.com/modaudit/modaudit/internal/doctor"
)

var doctorRoot string

// doctorCmd checks the environment before a scan.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the platform root is ready to scan",
	RunE: func(cmd *cobra.Command, args []string) error {
		if doctorRoot == "" {
			doctorRoot = cfg.Root
		}
		root, err := (&config.Config{Root: doctorRoot}).AbsRoot()
		if err != nil {
			return err
		}

		diag := doctor.Default().Diagnose(root)
		for _, check := range diag.Checks {
			mark := "ok"
			if !check.OK {
				mark = "FAIL"
				if !check.Blocker {
					mark = "warn"
				}
			}
			fmt.Printf("  [%-4s] %-22s %s\n", mark, check.Name, check.Detail)
		}

		if !diag.Healthy {
			return &ValidationError{Message: "environment is not ready to scan"}
		}
		fmt.Println("\nReady to scan.")
		return nil
	},
}

func init() {
	doctorCmd.Flags().StringVar(&doctorRoot, "root", "",
		"platform root to check (default from config)")
}
