package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cellvision/trainctl/internal/system"
)

var logsCmd = &cobra.Command{
	Use:   "logs <run>",
	Short: "View trainer output for a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogs,
}

var (
	logsWorkspace string
	logsFollow    bool
	logsLines     int
)

func init() {
	logsCmd.Flags().StringVarP(&logsWorkspace, "workspace", "w", ".", "Workspace root")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 50, "Number of lines to show")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	run, err := loadRun(logsWorkspace, args[0])
	if err != nil {
		return err
	}
	logPath := run.TrainerLog()

	tailArgs := []string{"-n", fmt.Sprintf("%d", logsLines)}
	if logsFollow {
		tailArgs = append(tailArgs, "-f")
	}
	tailArgs = append(tailArgs, logPath)

	if logsFollow {
		return system.DefaultExecutor().ReplaceProcess("tail", tailArgs...)
	}

	out, err := system.DefaultExecutor().Execute(cmd.Context(), "tail", tailArgs...)
	if err != nil {
		return fmt.Errorf("failed to read trainer log: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
