package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cellvision/trainctl/internal/errors"
	"github.com/cellvision/trainctl/internal/health"
	"github.com/cellvision/trainctl/internal/workspace"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <run>",
	Short: "Delete a run and all its artifacts",
	Long: `Removes the run directory, including checkpoints, results, statistics
and the event log. A run whose trainer is still alive must be deleted
with --force.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var (
	deleteWorkspace string
	deleteForce     bool
)

func init() {
	deleteCmd.Flags().StringVarP(&deleteWorkspace, "workspace", "w", ".", "Workspace root")
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Delete even if the trainer is still running")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	ws, err := openWorkspace(deleteWorkspace)
	if err != nil {
		return err
	}

	run, err := ws.LoadRun(name)
	if err != nil {
		return err
	}

	if !deleteForce && run.Metadata.Status == workspace.StatusRunning &&
		health.ProcessAlive(run.Metadata.PID) {
		return errors.UsageError("run " + name + " is still running; use --force to delete it anyway")
	}

	if err := ws.DeleteRun(name); err != nil {
		return err
	}

	logSuccess("Run %s deleted", name)
	return nil
}
