package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cellvision/trainctl/internal/monitor"
	"github.com/cellvision/trainctl/internal/workspace"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch run health in the foreground",
	Long: `Periodically derives the status of every run in the workspace and logs
transitions. A running run whose trainer process has died, or that has
produced no checkpoint or statistics activity within the stale window, is
reported as stale; with --mark-stale its metadata is set to failed.

Runs in the foreground until interrupted. Can be wrapped in a systemd
service for persistent monitoring.`,
	RunE: runMonitor,
}

var (
	monitorWorkspaceFlag string
	monitorInterval      int
	monitorStaleAfter    int
	monitorMarkStale     bool
)

func init() {
	monitorCmd.Flags().StringVarP(&monitorWorkspaceFlag, "workspace", "w", ".", "Workspace root")
	monitorCmd.Flags().IntVar(&monitorInterval, "interval", 60, "Check interval in seconds")
	monitorCmd.Flags().IntVar(&monitorStaleAfter, "stale-after", 15, "Minutes without activity before a running run is stale")
	monitorCmd.Flags().BoolVar(&monitorMarkStale, "mark-stale", false, "Mark stale runs as failed in their metadata")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(monitorWorkspaceFlag)
	if err != nil {
		return err
	}
	return monitorWorkspace(ws)
}

// monitorWorkspace runs the monitor loop until interrupted. It is shared
// with the run picker's monitor action.
func monitorWorkspace(ws *workspace.Workspace) error {
	interval := time.Duration(monitorInterval) * time.Second
	staleAfter := time.Duration(monitorStaleAfter) * time.Minute

	opts := []monitor.Option{
		monitor.WithStaleAfter(staleAfter),
		monitor.WithAuditLogger(auditLogger(ws)),
	}
	if monitorMarkStale {
		opts = append(opts, monitor.WithMarkStale(true))
	}

	mon := monitor.New(interval, ws, opts...)

	logInfo("Starting run monitor (interval: %ds, mark-stale: %v)", monitorInterval, monitorMarkStale)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := mon.Run(ctx)
	if err == context.Canceled {
		logInfo("Monitor stopped")
		return nil
	}
	return err
}
