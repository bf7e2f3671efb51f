package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modaudit/modaudit/internal/detector"
)

// rulesCmd prints the built-in incompatibility rule table.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the incompatibility rule table",
	Run: func(cmd *cobra.Command, args []string) {
		var lastCategory string
		for _, rule := range detector.New().Rules() {
			if string(rule.Category) != lastCategory {
				fmt.Printf("\n%s rules:\n", rule.Category)
				lastCategory = string(rule.Category)
			}
			fmt.Printf("  %-16s %-8s %s\n", rule.ID, rule.Severity, rule.Description)
		}
		fmt.Println()
	},
}
