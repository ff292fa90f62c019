package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cellvision/trainctl/internal/errors"
	"github.com/cellvision/trainctl/internal/results"
	"github.com/cellvision/trainctl/internal/system"
	"github.com/cellvision/trainctl/internal/testutil"
	"github.com/cellvision/trainctl/internal/workspace"
)

// writeConfig writes a snapshot-ensemble config into a temp directory with
// its workspace pointing inside the same directory. Returns the config path
// and the workspace root.
func writeConfig(t *testing.T) (string, string) {
	t.Helper()

	tmpDir := t.TempDir()

	var raw map[string]any
	if err := json.Unmarshal(testutil.MustLoadFixture(t, testutil.SnapshotEnsembleJSON), &raw); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	raw["workspace"] = "ws"

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}

	path := filepath.Join(tmpDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return path, filepath.Join(tmpDir, "ws")
}

func executeCommand(args ...string) (string, string, error) {
	// Reset flag values before each test
	verbose = false
	jsonOutput = false
	showJSON = false
	planAllEpochs = false
	runName = ""
	runTrainer = "gapnet-train"
	runNoStart = false
	runsWorkspace = "."
	runsPick = false
	statusWorkspace = "."
	deleteWorkspace = "."
	deleteForce = false
	eventsWorkspace = "."
	eventsJSON = false
	logsWorkspace = "."
	logsFollow = false
	logsLines = 50
	summarizeWorkspace = "."
	summarizeSplit = "val"
	summarizeGrouped = false
	summarizePerClass = false
	summarizeJSON = false
	initOutput = ""

	cmd := rootCmd
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	// Reset args for next test
	cmd.SetArgs(nil)
	cmd.SetOut(nil)
	cmd.SetErr(nil)

	return stdout.String(), stderr.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	if !strings.Contains(stdout, "trainctl") {
		t.Error("Help output should contain 'trainctl'")
	}

	if !strings.Contains(stdout, "Available Commands") {
		t.Error("Help output should list available commands")
	}
}

func TestValidateCommand_Valid(t *testing.T) {
	path := testutil.WriteFixture(t, testutil.SnapshotEnsembleJSON)

	if _, _, err := executeCommand("validate", path); err != nil {
		t.Fatalf("Validate failed for valid config: %v", err)
	}
}

func TestValidateCommand_TOML(t *testing.T) {
	path := testutil.WriteFixture(t, testutil.SnapshotEnsembleTOML)

	if _, _, err := executeCommand("validate", path); err != nil {
		t.Fatalf("Validate failed for valid TOML config: %v", err)
	}
}

func TestValidateCommand_Malformed(t *testing.T) {
	path := testutil.WriteFixture(t, testutil.MalformedJSON)

	_, _, err := executeCommand("validate", path)
	if err == nil {
		t.Fatal("Validate should fail for malformed config")
	}
	if got := errors.GetExitCode(err); got != errors.ExitParseError {
		t.Errorf("Exit code = %d, want %d", got, errors.ExitParseError)
	}
}

func TestValidateCommand_SchemaViolation(t *testing.T) {
	path := testutil.WriteFixture(t, testutil.MissingEpochsJSON)

	_, _, err := executeCommand("validate", path)
	if err == nil {
		t.Fatal("Validate should fail for missing epochs")
	}
	if got := errors.GetExitCode(err); got != errors.ExitValidationError {
		t.Errorf("Exit code = %d, want %d", got, errors.ExitValidationError)
	}
}

func TestValidateCommand_FirstErrorWins(t *testing.T) {
	bad := testutil.WriteFixture(t, testutil.MalformedJSON)
	good := testutil.WriteFixture(t, testutil.PlainJSON)

	_, _, err := executeCommand("validate", bad, good)
	if got := errors.GetExitCode(err); got != errors.ExitParseError {
		t.Errorf("Exit code = %d, want %d", got, errors.ExitParseError)
	}
}

func TestShowCommand_JSON(t *testing.T) {
	path := testutil.WriteFixture(t, testutil.PlainJSON)

	if _, _, err := executeCommand("show", path, "--json"); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
}

func TestPlanCommand(t *testing.T) {
	path := testutil.WriteFixture(t, testutil.SnapshotEnsembleJSON)

	if _, _, err := executeCommand("plan", path); err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
}

func TestRunCommand_StartsTrainer(t *testing.T) {
	path, wsRoot := writeConfig(t)

	mock := system.NewMockExecutor()
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	_, _, err := executeCommand("run", path, "--name", "test-run", "--trainer", "fake-train --gpu 0")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	ws, err := workspace.Open(wsRoot)
	if err != nil {
		t.Fatalf("Open workspace: %v", err)
	}
	run, err := ws.LoadRun("test-run")
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}

	if run.Metadata.Status != workspace.StatusRunning {
		t.Errorf("Status = %s, want %s", run.Metadata.Status, workspace.StatusRunning)
	}
	if run.Metadata.PID != 1000 {
		t.Errorf("PID = %d, want 1000", run.Metadata.PID)
	}
	if run.Metadata.TotalEpochs != 120 {
		t.Errorf("TotalEpochs = %d, want 120", run.Metadata.TotalEpochs)
	}
	if _, err := os.Stat(run.ConfigFile()); err != nil {
		t.Errorf("Frozen config missing: %v", err)
	}

	if len(mock.Commands) != 1 {
		t.Fatalf("Commands = %d, want 1", len(mock.Commands))
	}
	cmd := mock.Commands[0]
	if cmd.Name != "fake-train" {
		t.Errorf("Trainer = %s, want fake-train", cmd.Name)
	}
	if len(cmd.Args) < 3 || cmd.Args[0] != "--gpu" || cmd.Args[1] != "0" {
		t.Errorf("Trainer args = %v, want shell-split flags first", cmd.Args)
	}
	if cmd.Dir != run.Dir {
		t.Errorf("Trainer dir = %s, want %s", cmd.Dir, run.Dir)
	}

	events, err := auditLogger(ws).Events("test-run")
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Events = %d, want create and start", len(events))
	}
	if events[0].Type != "create" || events[1].Type != "start" {
		t.Errorf("Event types = %s, %s", events[0].Type, events[1].Type)
	}
}

func TestRunCommand_NoStart(t *testing.T) {
	path, wsRoot := writeConfig(t)

	mock := system.NewMockExecutor()
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	_, _, err := executeCommand("run", path, "--name", "staged", "--no-start")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(mock.Commands) != 0 {
		t.Errorf("Trainer should not be launched with --no-start")
	}

	ws, _ := workspace.Open(wsRoot)
	run, err := ws.LoadRun("staged")
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if run.Metadata.Status != workspace.StatusCreated {
		t.Errorf("Status = %s, want %s", run.Metadata.Status, workspace.StatusCreated)
	}
}

func TestRunCommand_DuplicateName(t *testing.T) {
	path, _ := writeConfig(t)

	mock := system.NewMockExecutor()
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	if _, _, err := executeCommand("run", path, "--name", "dup", "--no-start"); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if _, _, err := executeCommand("run", path, "--name", "dup", "--no-start"); err == nil {
		t.Error("Second run with the same name should fail")
	}
}

func TestRunCommand_TrainerStartFailure(t *testing.T) {
	path, wsRoot := writeConfig(t)

	mock := system.NewMockExecutor()
	mock.StartErr = os.ErrPermission
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	_, _, err := executeCommand("run", path, "--name", "broken")
	if err == nil {
		t.Fatal("Run should fail when the trainer cannot start")
	}
	if got := errors.GetExitCode(err); got != errors.ExitTrainerFailed {
		t.Errorf("Exit code = %d, want %d", got, errors.ExitTrainerFailed)
	}

	ws, _ := workspace.Open(wsRoot)
	run, err := ws.LoadRun("broken")
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if run.Metadata.Status != workspace.StatusFailed {
		t.Errorf("Status = %s, want %s", run.Metadata.Status, workspace.StatusFailed)
	}
}

func TestRunsCommand_EmptyWorkspace(t *testing.T) {
	if _, _, err := executeCommand("runs", "-w", t.TempDir()); err != nil {
		t.Fatalf("Runs failed on empty workspace: %v", err)
	}
}

func TestRunsCommand_ListsRuns(t *testing.T) {
	path, wsRoot := writeConfig(t)

	mock := system.NewMockExecutor()
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	if _, _, err := executeCommand("run", path, "--name", "listed", "--no-start"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, _, err := executeCommand("runs", "-w", wsRoot); err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
}

func TestStatusCommand_NotFound(t *testing.T) {
	_, _, err := executeCommand("status", "ghost", "-w", t.TempDir())
	if err == nil {
		t.Fatal("Status should fail for unknown run")
	}
	if got := errors.GetExitCode(err); got != errors.ExitRunNotFound {
		t.Errorf("Exit code = %d, want %d", got, errors.ExitRunNotFound)
	}
}

func TestDeleteCommand(t *testing.T) {
	path, wsRoot := writeConfig(t)

	mock := system.NewMockExecutor()
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	if _, _, err := executeCommand("run", path, "--name", "doomed", "--no-start"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, _, err := executeCommand("delete", "doomed", "-w", wsRoot); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	ws, _ := workspace.Open(wsRoot)
	if ws.RunExists("doomed") {
		t.Error("Run should be gone after delete")
	}
}

func TestSummarizeCommand(t *testing.T) {
	path, wsRoot := writeConfig(t)

	mock := system.NewMockExecutor()
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	if _, _, err := executeCommand("run", path, "--name", "scored", "--no-start"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	ws, _ := workspace.Open(wsRoot)
	run, err := ws.LoadRun("scored")
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}

	rs := &results.ResultSet{
		IDs:         []string{"p1-A01-v1", "p1-A01-v2", "p1-B02-v1"},
		Predictions: [][]float64{{0.9, 0.1}, {0.8, 0.2}, {0.2, 0.7}},
		Targets:     [][]float64{{1, 0}, {1, 0}, {0, 1}},
	}
	if err := rs.Save(run.ResultsFile("val")); err != nil {
		t.Fatalf("Save results: %v", err)
	}

	if _, _, err := executeCommand("summarize", "scored", "-w", wsRoot, "--per-class"); err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if _, _, err := executeCommand("summarize", "scored", "-w", wsRoot, "--grouped", "--json"); err != nil {
		t.Fatalf("Grouped summarize failed: %v", err)
	}
}

func TestSummarizeCommand_MissingResults(t *testing.T) {
	path, wsRoot := writeConfig(t)

	mock := system.NewMockExecutor()
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	if _, _, err := executeCommand("run", path, "--name", "bare", "--no-start"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	_, _, err := executeCommand("summarize", "bare", "-w", wsRoot)
	if err == nil {
		t.Fatal("Summarize should fail without a results file")
	}
	if got := errors.GetExitCode(err); got != errors.ExitResultsError {
		t.Errorf("Exit code = %d, want %d", got, errors.ExitResultsError)
	}
}

func TestEventsCommand(t *testing.T) {
	path, wsRoot := writeConfig(t)

	mock := system.NewMockExecutor()
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	if _, _, err := executeCommand("run", path, "--name", "logged", "--no-start"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, _, err := executeCommand("events", "logged", "-w", wsRoot); err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if _, _, err := executeCommand("events", "logged", "-w", wsRoot, "--json"); err != nil {
		t.Fatalf("Events --json failed: %v", err)
	}
}

func TestLogsCommand(t *testing.T) {
	path, wsRoot := writeConfig(t)

	mock := system.NewMockExecutor()
	mock.AddResponse("tail -n", []byte("epoch 1 done\n"), nil)
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	if _, _, err := executeCommand("run", path, "--name", "chatty", "--no-start"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, _, err := executeCommand("logs", "chatty", "-w", wsRoot); err != nil {
		t.Fatalf("Logs failed: %v", err)
	}

	cmd, ok := mock.LastCommand()
	if !ok || cmd.Name != "tail" {
		t.Fatalf("expected tail invocation, got %v", cmd)
	}
	if len(cmd.Args) != 3 || cmd.Args[0] != "-n" || cmd.Args[1] != "50" {
		t.Errorf("tail args = %v", cmd.Args)
	}
}

func TestRegistryCommand(t *testing.T) {
	if _, _, err := executeCommand("registry"); err != nil {
		t.Fatalf("Registry failed: %v", err)
	}
}
