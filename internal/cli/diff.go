package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modaudit/modaudit/internal/models"
	"github.com/modaudit/modaudit/internal/storage"
)

// diffCmd compares the two most recent stored runs.
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare the last two stored check runs",
	Long: `Compare the summaries of the two most recent runs stored with
'check --store' and show how the module set and issue counts changed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runs, err := storage.NewLocal(cfg.StorageDir).LastNRuns(2)
		if err != nil {
			return &ValidationError{Message: err.Error()}
		}
		if len(runs) < 2 {
			return &ValidationError{Message: "need at least two stored runs to diff"}
		}

		prev, curr := runs[0], runs[1]
		fmt.Printf("Comparing %s -> %s\n\n",
			prev.Timestamp.Format("2006-01-02 15:04:05"),
			curr.Timestamp.Format("2006-01-02 15:04:05"))

		printDelta("Modules scanned", prev.Report.Summary.Total, curr.Report.Summary.Total)
		printDelta("Compatible", prev.Report.Summary.Compatible, curr.Report.Summary.Compatible)
		printDelta("Incompatible", prev.Report.Summary.Incompatible, curr.Report.Summary.Incompatible)
		printDelta("Critical issues", prev.Report.Summary.CriticalIssues, curr.Report.Summary.CriticalIssues)
		printDelta("Warnings", prev.Report.Summary.WarningIssues, curr.Report.Summary.WarningIssues)

		printModuleChanges(prev.Report, curr.Report)
		return nil
	},
}

func printDelta(label string, prev, curr int) {
	change := ""
	switch {
	case curr > prev:
		change = fmt.Sprintf(" (+%d)", curr-prev)
	case curr < prev:
		change = fmt.Sprintf(" (%d)", curr-prev)
	}
	fmt.Printf("  %-18s %d -> %d%s\n", label, prev, curr, change)
}

func printModuleChanges(prev, curr *models.Report) {
	var fixed, broken []string
	for _, name := range curr.SortedNames() {
		c := curr.Modules[name]
		p, ok := prev.Modules[name]
		if !ok {
			continue
		}
		if !p.Compatible && c.Compatible {
			fixed = append(fixed, name)
		}
		if p.Compatible && !c.Compatible {
			broken = append(broken, name)
		}
	}

	if len(fixed) > 0 {
		fmt.Println("\nNow compatible:")
		for _, name := range fixed {
			fmt.Printf("  + %s\n", name)
		}
	}
	if len(broken) > 0 {
		fmt.Println("\nNewly incompatible:")
		for _, name := range broken {
			fmt.Printf("  - %s\n", name)
		}
	}
}
