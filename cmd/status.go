package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cellvision/trainctl/internal/health"
	"github.com/cellvision/trainctl/internal/tui"
	"github.com/cellvision/trainctl/internal/workspace"
)

var statusCmd = &cobra.Command{
	Use:   "status <run>",
	Short: "Show detailed status of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

var statusWorkspace string

func init() {
	statusCmd.Flags().StringVarP(&statusWorkspace, "workspace", "w", ".", "Workspace root")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	run, err := loadRun(statusWorkspace, args[0])
	if err != nil {
		return err
	}

	printRunStatus(run)
	return nil
}

func printRunStatus(run *workspace.Run) {
	check := health.Check(run, health.DefaultStaleAfter)

	fmt.Printf("Run: %s\n", run.Name())
	fmt.Printf("Status: %s %s\n", tui.StatusIcon(check.Status), check.Status)
	fmt.Printf("Directory: %s\n", run.Dir)
	fmt.Printf("Config: %s\n", run.Metadata.ConfigPath)
	fmt.Printf("Epochs: %d\n", run.Metadata.TotalEpochs)
	if run.Metadata.PID > 0 {
		fmt.Printf("PID: %d\n", run.Metadata.PID)
	}
	fmt.Printf("Created: %s\n", run.Metadata.CreatedAt)
	if run.Metadata.StartedAt != "" {
		fmt.Printf("Started: %s\n", run.Metadata.StartedAt)
	}
	if run.Metadata.FinishedAt != "" {
		fmt.Printf("Finished: %s\n", run.Metadata.FinishedAt)
	}
	fmt.Println()

	fmt.Printf("Checkpoints: %d\n", check.Checkpoints)
	if checkpoints, err := run.Checkpoints(); err == nil {
		for _, cp := range checkpoints {
			fmt.Printf("  %s\n", cp)
		}
	}
	if check.Age != "" {
		fmt.Printf("Last activity: %s ago\n", check.Age)
	}
}
