package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cellvision/trainctl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "trainctl",
	Short: "GAPNet training configuration and run management CLI",
	Long: `trainctl owns the configuration surface of the GAPNet training stack.

It validates training configuration documents, previews learning-rate
schedules and snapshot-ensemble checkpoint plans, creates run workspaces,
launches the external trainer, and summarizes exported prediction files.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
