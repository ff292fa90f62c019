package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cellvision/trainctl/internal/config"
	"github.com/cellvision/trainctl/internal/logging"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config>...",
	Short: "Validate training configuration documents",
	Long: `Loads each configuration document and reports parse and schema errors.

Validation is all-or-nothing per document: a document either loads
completely or fails with the first error found. Non-fatal findings, such
as an ensemble whose epoch count does not match cycle_length *
ensemble_size, are reported as warnings.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var firstErr error

	for _, path := range args {
		logging.Debug("validating config", "path", path)

		doc, err := config.Load(path)
		if err != nil {
			logError("%s: %v", path, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		for _, w := range doc.Warnings {
			logWarning("%s: %s", path, w)
		}
		logSuccess("%s: valid (%s, %d epochs)", path, doc.Name, doc.TotalEpochs())
	}

	return firstErr
}
