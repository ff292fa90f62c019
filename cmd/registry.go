package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cellvision/trainctl/internal/registry"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "List the known reference identifiers",
	Long: `Shows the identifiers a configuration document may use for each
reference kind: models, optimizers, dataset readers and transforms.`,
	RunE: runRegistry,
}

func init() {
	rootCmd.AddCommand(registryCmd)
}

func runRegistry(cmd *cobra.Command, args []string) error {
	for _, kind := range registry.Kinds() {
		fmt.Printf("%s:\n", kind)
		for _, name := range registry.Known(kind) {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println()
	}
	return nil
}
