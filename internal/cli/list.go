package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modaudit/modaudit/internal/config"
	"github.com/modaudit/modaudit/internal/registry"
)

var (
	listRoot      string
	listModuleMap string
)

// listCmd prints the resolved module registry without scanning.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List modules resolved from the platform root",
	RunE: func(cmd *cobra.Command, args []string) error {
		if listRoot == "" {
			listRoot = cfg.Root
		}
		if listModuleMap == "" {
			listModuleMap = cfg.ModuleMap
		}

		root, err := (&config.Config{Root: listRoot}).AbsRoot()
		if err != nil {
			return err
		}

		reg := registry.New()
		if listModuleMap != "" {
			reg = registry.NewWithLocators(&registry.FileRegistry{Path: listModuleMap})
		}

		modules, err := reg.Resolve(root)
		if err != nil {
			return &ValidationError{Message: err.Error()}
		}

		for _, name := range registry.SortedNames(modules) {
			fmt.Printf("%-40s %s\n", name, modules[name])
		}
		logVerbose("%d modules", len(modules))
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listRoot, "root", "",
		"platform root to inspect (default from config)")
	listCmd.Flags().StringVar(&listModuleMap, "module-map", "",
		"explicit moduleName -> path YAML file instead of layout discovery")
}
