package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cellvision/trainctl/internal/audit"
)

var eventsCmd = &cobra.Command{
	Use:   "events <run>",
	Short: "Display the lifecycle event log for a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvents,
}

var (
	eventsWorkspace string
	eventsJSON      bool
)

func init() {
	eventsCmd.Flags().StringVarP(&eventsWorkspace, "workspace", "w", ".", "Workspace root")
	eventsCmd.Flags().BoolVar(&eventsJSON, "json", false, "Output events as JSON lines")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(eventsWorkspace)
	if err != nil {
		return err
	}

	run, err := ws.LoadRun(args[0])
	if err != nil {
		return err
	}

	events, err := auditLogger(ws).Events(run.Name())
	if err != nil {
		return fmt.Errorf("failed to read event log: %w", err)
	}

	if len(events) == 0 {
		logInfo("No events found for run %s", run.Name())
		return nil
	}

	for _, e := range events {
		if eventsJSON {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Println(string(data))
			continue
		}

		ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
		switch {
		case e.Type == audit.EventCheckpoint:
			fmt.Printf("[%s] %-10s epoch %d %s\n", ts, e.Type, e.Epoch, e.Details)
		case e.Details != "":
			fmt.Printf("[%s] %-10s %s\n", ts, e.Type, e.Details)
		default:
			fmt.Printf("[%s] %-10s\n", ts, e.Type)
		}
	}

	return nil
}
