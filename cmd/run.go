package cmd

import (
	"fmt"
	"path/filepath"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/cellvision/trainctl/internal/audit"
	"github.com/cellvision/trainctl/internal/errors"
	"github.com/cellvision/trainctl/internal/logging"
	"github.com/cellvision/trainctl/internal/system"
	"github.com/cellvision/trainctl/internal/workspace"
)

var runCmd = &cobra.Command{
	Use:   "run <config>",
	Short: "Create a run workspace and launch the trainer",
	Long: `Creates a run directory under the document's workspace, freezes a copy
of the configuration into it, and launches the external trainer detached
from the CLI. Trainer output goes to trainer.log in the run directory.

The trainer command is split shell-style, so it may carry its own flags:

  trainctl run config.json --trainer "python -m gapnet.train"`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

var (
	runName    string
	runTrainer string
	runNoStart bool
)

func init() {
	runCmd.Flags().StringVarP(&runName, "name", "n", "", "Run name (default: the document's name)")
	runCmd.Flags().StringVar(&runTrainer, "trainer", "gapnet-train", "Trainer command to launch")
	runCmd.Flags().BoolVar(&runNoStart, "no-start", false, "Create the run workspace without launching the trainer")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	name := runName
	if name == "" {
		name = doc.Name
	}
	if err := workspace.ValidateRunName(name); err != nil {
		return err
	}

	ws, err := openWorkspace(doc.Workspace)
	if err != nil {
		return err
	}

	logging.Debug("creating run", "name", name, "workspace", doc.Workspace)

	run, err := ws.CreateRun(name, doc.Path())
	if err != nil {
		return err
	}

	log := auditLogger(ws)
	if err := log.LogEvent(audit.EventCreate, name, filepath.Base(doc.Path())); err != nil {
		logging.Warn("failed to record create event", "run", name, "error", err)
	}

	logSuccess("Run %s created", name)
	fmt.Printf("  Directory: %s\n", run.Dir)
	fmt.Printf("  Config: %s\n", run.ConfigFile())

	if runNoStart {
		fmt.Printf("  Start: trainctl run is complete; launch the trainer against %s\n", run.ConfigFile())
		return nil
	}

	argv, err := shellquote.Split(runTrainer)
	if err != nil || len(argv) == 0 {
		return errors.UsageError(fmt.Sprintf("invalid trainer command %q", runTrainer))
	}
	argv = append(argv, run.ConfigFile(), "--run-dir", run.Dir)

	logPath := run.TrainerLog()
	pid, err := system.DefaultExecutor().Start(run.Dir, logPath, argv[0], argv[1:]...)
	if err != nil {
		if ferr := run.MarkFinished(workspace.StatusFailed); ferr != nil {
			logging.Warn("failed to mark run failed", "run", name, "error", ferr)
		}
		return errors.TrainerFailed(err)
	}

	if err := run.MarkStarted(pid, doc.TotalEpochs()); err != nil {
		return err
	}
	if err := log.LogEvent(audit.EventStart, name, fmt.Sprintf("pid %d", pid)); err != nil {
		logging.Warn("failed to record start event", "run", name, "error", err)
	}

	logSuccess("Trainer started (pid %d)", pid)
	fmt.Printf("  Log: %s\n", logPath)
	fmt.Printf("  Watch: trainctl monitor -w %s\n", doc.Workspace)

	return nil
}
