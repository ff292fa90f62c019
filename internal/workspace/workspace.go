package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/cellvision/trainctl/internal/errors"
)

// runNameRegex matches valid run names: start with a lowercase letter or
// digit, then lowercase letters, digits, underscores, hyphens or dots, at
// most 63 characters.
var runNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{0,62}$`)

// ValidateRunName checks that name is usable as a run directory name.
func ValidateRunName(name string) error {
	if name == "" {
		return fmt.Errorf("run name cannot be empty")
	}
	if !runNameRegex.MatchString(name) {
		return fmt.Errorf("invalid run name %q: must start with a lowercase letter or digit and contain only lowercase letters, digits, underscores, hyphens, or dots", name)
	}
	return nil
}

// Workspace is the directory tree that holds training runs. Each run
// lives under runs/<name>/ with its frozen configuration, checkpoints,
// results and statistics.
type Workspace struct {
	Root string
}

// Open resolves root to an absolute path and ensures the runs directory
// exists.
func Open(root string) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WorkspaceError("resolve workspace path", err)
	}
	ws := &Workspace{Root: abs}
	if err := os.MkdirAll(ws.RunsDir(), 0755); err != nil {
		return nil, errors.WorkspaceError("create runs directory", err)
	}
	return ws, nil
}

// RunsDir returns the directory that holds all runs.
func (w *Workspace) RunsDir() string {
	return filepath.Join(w.Root, "runs")
}

// runDir resolves the directory of a named run, refusing names that
// would escape the workspace.
func (w *Workspace) runDir(name string) (string, error) {
	if err := ValidateRunName(name); err != nil {
		return "", errors.WorkspaceError("resolve run directory", err)
	}
	dir, err := securejoin.SecureJoin(w.RunsDir(), name)
	if err != nil {
		return "", errors.WorkspaceError("resolve run directory", err)
	}
	return dir, nil
}

// RunExists reports whether a run of the given name exists.
func (w *Workspace) RunExists(name string) bool {
	dir, err := w.runDir(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(dir, metadataFile))
	return err == nil
}

// CreateRun creates the directory tree for a new run and writes its
// metadata. The configuration file at configPath is frozen into the run
// directory so later edits to the original cannot change what the run
// trained with.
func (w *Workspace) CreateRun(name, configPath string) (*Run, error) {
	dir, err := w.runDir(name)
	if err != nil {
		return nil, err
	}
	if w.RunExists(name) {
		return nil, errors.WorkspaceError("create run",
			fmt.Errorf("run %s already exists", name))
	}

	for _, sub := range []string{checkpointsDir, resultsDir, statisticsDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return nil, errors.WorkspaceError("create run directories", err)
		}
	}

	frozen, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WorkspaceError("read configuration", err)
	}
	run := &Run{
		Dir: dir,
		Metadata: RunMetadata{
			Name:       name,
			ConfigPath: configPath,
			Status:     StatusCreated,
			CreatedAt:  now(),
		},
	}
	if err := os.WriteFile(run.ConfigFile(), frozen, 0644); err != nil {
		return nil, errors.WorkspaceError("freeze configuration", err)
	}
	if err := run.SaveMetadata(); err != nil {
		return nil, err
	}
	return run, nil
}

// LoadRun loads an existing run by name.
func (w *Workspace) LoadRun(name string) (*Run, error) {
	dir, err := w.runDir(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, errors.RunNotFound(name)
	}

	run := &Run{Dir: dir}
	if err := unmarshalMetadata(data, &run.Metadata); err != nil {
		return nil, errors.WorkspaceError("parse run metadata", err)
	}
	return run, nil
}

// ListRuns returns all runs in the workspace, sorted by directory name.
// Entries without readable metadata are skipped.
func (w *Workspace) ListRuns() ([]*Run, error) {
	entries, err := os.ReadDir(w.RunsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WorkspaceError("read runs directory", err)
	}

	var runs []*Run
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		run, err := w.LoadRun(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// DeleteRun removes a run directory and everything under it.
func (w *Workspace) DeleteRun(name string) error {
	dir, err := w.runDir(name)
	if err != nil {
		return err
	}
	if !w.RunExists(name) {
		return errors.RunNotFound(name)
	}
	if err := os.RemoveAll(dir); err != nil {
		return errors.WorkspaceError("delete run", err)
	}
	return nil
}
