package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cellvision/trainctl/internal/health"
	"github.com/cellvision/trainctl/internal/logging"
	"github.com/cellvision/trainctl/internal/tui"
	"github.com/cellvision/trainctl/internal/workspace"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List training runs in a workspace",
	RunE:  runRuns,
}

var (
	runsWorkspace string
	runsPick      bool
)

func init() {
	runsCmd.Flags().StringVarP(&runsWorkspace, "workspace", "w", ".", "Workspace root")
	runsCmd.Flags().BoolVar(&runsPick, "pick", false, "Open the interactive run picker")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(runsWorkspace)
	if err != nil {
		return err
	}

	runs, err := ws.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		logInfo("No runs found. Create one with: trainctl run <config.json>")
		return nil
	}

	if runsPick {
		return pickRun(ws)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATUS\tEPOCHS\tCHECKPOINTS\tACTIVITY")
	fmt.Fprintln(w, "----\t------\t------\t-----------\t--------")

	for _, run := range runs {
		check := health.Check(run, health.DefaultStaleAfter)
		age := check.Age
		if age == "" {
			age = "-"
		}
		fmt.Fprintf(w, "%s\t%s %s\t%d\t%d\t%s\n",
			run.Name(), tui.StatusIcon(check.Status), check.Status,
			run.Metadata.TotalEpochs, check.Checkpoints, age)
	}

	return w.Flush()
}

func pickRun(ws *workspace.Workspace) error {
	runs, err := ws.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	result, err := tui.RunPicker(runs)
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)

	switch result.Action {
	case tui.ActionShow:
		if result.Run != nil {
			printRunStatus(result.Run)
		}

	case tui.ActionMonitor:
		return monitorWorkspace(ws)

	case tui.ActionDelete:
		if result.Run != nil {
			fmt.Println("\nTo delete this run, run:")
			fmt.Printf("  trainctl delete %s -w %s\n", result.Run.Name(), runsWorkspace)
		}
	}

	return nil
}
