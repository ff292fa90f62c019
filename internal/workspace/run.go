package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cellvision/trainctl/internal/errors"
)

// Run lifecycle states recorded in the run metadata.
const (
	StatusCreated   = "created"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusAborted   = "aborted"
	StatusFailed    = "failed"
)

// Fixed file names inside a run directory.
const (
	metadataFile   = "run.json"
	configFile     = "config.json"
	eventsFile     = "events.jsonl"
	checkpointsDir = "checkpoints"
	resultsDir     = "results"
	statisticsDir  = "statistics"
)

// Checkpoint file names a trainer writes into the checkpoints directory.
const (
	CheckpointLatest    = "checkpoint.pth.tar"
	CheckpointBest      = "model_best.pth.tar"
	CheckpointUserAbort = "user_abort.pth.tar"
)

// EnsembleCheckpoint returns the checkpoint file name for the zero-based
// ensemble member m, matching Plan.MemberAt indexing.
func EnsembleCheckpoint(m int) string {
	return fmt.Sprintf("ensemble-%d.pth.tar", m)
}

// RunMetadata is the persistent record of a training run, stored as
// run.json inside the run directory.
type RunMetadata struct {
	Name        string `json:"name"`
	ConfigPath  string `json:"configPath"`
	Status      string `json:"status"`
	PID         int    `json:"pid,omitempty"`
	TotalEpochs int    `json:"totalEpochs,omitempty"`
	CreatedAt   string `json:"createdAt"`
	StartedAt   string `json:"startedAt,omitempty"`
	FinishedAt  string `json:"finishedAt,omitempty"`
}

func now() string {
	return time.Now().Format(time.RFC3339)
}

func unmarshalMetadata(data []byte, m *RunMetadata) error {
	if err := json.Unmarshal(data, m); err != nil {
		return err
	}
	if m.Status == "" {
		m.Status = StatusCreated
	}
	return nil
}

// Run is a training run rooted at Dir.
type Run struct {
	Dir      string
	Metadata RunMetadata
}

func (r *Run) Name() string { return r.Metadata.Name }

// MetadataFile returns the path of the run's metadata file.
func (r *Run) MetadataFile() string { return filepath.Join(r.Dir, metadataFile) }

// ConfigFile returns the path of the frozen configuration copy.
func (r *Run) ConfigFile() string { return filepath.Join(r.Dir, configFile) }

// EventsFile returns the path of the run's audit log.
func (r *Run) EventsFile() string { return filepath.Join(r.Dir, eventsFile) }

// CheckpointsDir returns the directory that receives model checkpoints.
func (r *Run) CheckpointsDir() string { return filepath.Join(r.Dir, checkpointsDir) }

// ResultsDir returns the directory that receives prediction exports.
func (r *Run) ResultsDir() string { return filepath.Join(r.Dir, resultsDir) }

// StatisticsDir returns the directory that receives training statistics.
func (r *Run) StatisticsDir() string { return filepath.Join(r.Dir, statisticsDir) }

// ResultsFile returns the prediction export path for a split name.
func (r *Run) ResultsFile(split string) string {
	return filepath.Join(r.ResultsDir(), split+".json")
}

// TrainerLog returns the path the launched trainer's output is appended to.
func (r *Run) TrainerLog() string { return filepath.Join(r.Dir, "trainer.log") }

// SaveMetadata writes the run metadata back to disk.
func (r *Run) SaveMetadata() error {
	data, err := json.MarshalIndent(&r.Metadata, "", "  ")
	if err != nil {
		return errors.WorkspaceError("marshal run metadata", err)
	}
	if err := os.WriteFile(r.MetadataFile(), data, 0644); err != nil {
		return errors.WorkspaceError("write run metadata", err)
	}
	return nil
}

// MarkStarted records that the trainer process began.
func (r *Run) MarkStarted(pid, totalEpochs int) error {
	r.Metadata.Status = StatusRunning
	r.Metadata.PID = pid
	r.Metadata.TotalEpochs = totalEpochs
	r.Metadata.StartedAt = now()
	return r.SaveMetadata()
}

// MarkFinished records a terminal status for the run.
func (r *Run) MarkFinished(status string) error {
	r.Metadata.Status = status
	r.Metadata.PID = 0
	r.Metadata.FinishedAt = now()
	return r.SaveMetadata()
}

// Checkpoints lists the checkpoint files present in the run, sorted by
// name.
func (r *Run) Checkpoints() ([]string, error) {
	entries, err := os.ReadDir(r.CheckpointsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WorkspaceError("read checkpoints directory", err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
